package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/fintrack/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"optcurr": FormatOptionalCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"date":    func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.LedgerReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.LedgerReport
		Highlights Highlights
		Notes      []string
	}{report, AnalyzeReport(report), ReportNotes(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rpgo/fintrack/internal/domain"
)

// ErrUnsupportedFormat is returned when a format name resolves to no formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter renders a ledger report. Output must depend only on the report.
type Formatter interface {
	Format(report *domain.LedgerReport) ([]byte, error)
	// Name is the canonical format name used by the registry.
	Name() string
}

// FormatterFunc lets a plain function act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.LedgerReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.LedgerReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                  { return ff.ID }

// WriteFormatted runs a formatter and writes output to a file in dir named after the
// report's generation time.
func WriteFormatted(f Formatter, report *domain.LedgerReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("fintrack_report_%s.%s", report.GeneratedAt.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	ConsoleFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName returns the formatter registered under name or one of its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	canonical := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == name || f.Name() == canonical {
			return f
		}
	}
	return nil
}

// aliasMap maps accepted synonyms to canonical format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
}

// NormalizeFormatName lowercases name and resolves aliases
func NormalizeFormatName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[key]; ok {
		return canonical
	}
	return key
}

// AvailableFormatterNames lists canonical names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension maps a canonical formatter name to the extension used when saving.
func FileExtension(name string) string {
	switch n := NormalizeFormatName(name); {
	case strings.Contains(n, "csv"):
		return "csv"
	case strings.HasPrefix(n, "console"):
		return "txt"
	default:
		return n
	}
}

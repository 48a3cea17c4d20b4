package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/fintrack/internal/domain"
)

// GenerateReport renders report in format and saves it to dir, returning the written paths.
// "all" writes the detailed console report and the detailed CSV.
func GenerateReport(report *domain.LedgerReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		path, err := WriteFormatted(f, report, dir, FileExtension(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	switch NormalizeFormatName(format) {
	case "all":
		var paths []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			path, err := WriteFormatted(f, report, dir, FileExtension(f.Name()))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	default:
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
}

// Render formats report without writing it anywhere
func Render(report *domain.LedgerReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}
	return f.Format(report)
}

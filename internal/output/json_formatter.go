package output

import (
	"encoding/json"

	"github.com/rpgo/fintrack/internal/domain"
)

// JSONFormatter serializes the ledger report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.LedgerReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

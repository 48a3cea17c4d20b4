package calculation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s %s", expected, actual.String(), fmt.Sprint(msgAndArgs...))
}

// recordingLogger keeps formatted messages per level
type recordingLogger struct {
	mu                      sync.Mutex
	debug, info, warn, errs []string
}

func (r *recordingLogger) record(dst *[]string, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.record(&r.debug, format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.record(&r.info, format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.record(&r.warn, format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.record(&r.errs, format, args...) }

package runtime

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CrashReport is the structured record a recovered panic produces,
// built from the same panic value and stack trace pkg/lifecycle already
// appends to its plain-text CrashLog, plus the session id scoping it to
// one run.
type CrashReport struct {
	Time       time.Time `json:"time"`
	PanicValue string    `json:"panic_value"`
	Stack      string    `json:"stack"`
	SessionID  string    `json:"session_id"`
}

// NewCrashReport builds a CrashReport from a recovered panic. Called
// from Lifecycle.CrashHook, which runs inside the panic's own deferred
// recover, so time.Now here reflects the moment of the crash.
func NewCrashReport(sessionID string, panicValue any, stack string) CrashReport {
	return CrashReport{
		Time:       time.Now(),
		PanicValue: fmt.Sprintf("%v", panicValue),
		Stack:      stack,
		SessionID:  sessionID,
	}
}

// AppendJSONLine appends the report to path as one JSON object per
// line, so a deployment can tail or grep the file without parsing a
// top-level array.
func (c CrashReport) AppendJSONLine(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("runtime: open crash report %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("runtime: encode crash report: %w", err)
	}
	return nil
}

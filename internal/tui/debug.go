package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugLogf appends one line to the file named by RENTDESK_TUI_DEBUG_LOG.
// A full-screen program cannot log to stdout, so this is the only trace
// channel. No-op when the variable is unset; failures are swallowed.
func (m *appModel) debugLogf(format string, args ...any) {
	if strings.TrimSpace(m.debugLogPath) == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}

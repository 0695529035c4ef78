// Package debug provides env-gated protocol tracing for the store clients,
// independent of the structured logger. Set NGSYNC_DEBUG=1 (or pass
// --verbose) to see request-level detail on stderr.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("NGSYNC_DEBUG") != ""
	verboseMode = false
)

// Enabled reports whether debug tracing is on.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables debug output regardless of the environment.
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// Logf writes a trace line to stderr when debug tracing is on.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

package report

import (
	"fmt"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during generation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines even though generation itself is single threaded.
type Reporter struct {
	// The mutex used to synchronize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all generation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level.  If
// the reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
			isErr:    false,
		}
	}
}

// -----------------------------------------------------------------------------

// ReportFatal reports a fatal error.  These are errors that should stop the
// whole run immediately: invalid configuration, unreadable input files, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportError reports a structural generation error: an unresolvable or
// circular type, an unknown binding model, or invalid IDL usage.  The error's
// own message carries the source location when one exists.
func ReportError(err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayError(err.Error())
	}
}

// ReportErrorAt reports a generation error message at an explicit location.
func ReportErrorAt(loc Location, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayError(fmt.Sprintf("%s: %s", loc, fmt.Sprintf(message, args...)))
	}
}

// ReportWarning reports a generation warning.
func ReportWarning(loc Location, message string, args ...interface{}) {
	if rep.logLevel > LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(fmt.Sprintf("%s: %s", loc, fmt.Sprintf(message, args...)))
	}
}

// ReportInfo reports an informational message, such as a file being written.
func ReportInfo(message string, args ...interface{}) {
	if rep.logLevel > LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(fmt.Sprintf(message, args...))
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.isErr
}

// CatchErrors catches any errors thrown by a `panic` during a stage of
// generation.  It reports structural errors through the reporter and rethrows
// everything else.  It should be called in a `defer` at the start of a stage.
func CatchErrors() {
	if x := recover(); x != nil {
		if err, ok := x.(error); ok {
			ReportError(err)
		} else {
			panic(x)
		}
	}
}

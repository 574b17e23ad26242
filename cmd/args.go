package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"

	"idlglue/report"
)

const usage = `Usage: idlglue [flags|options] <path to glue.toml or its directory>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --version   Displays the current generator version.

Options:
--------
-o,  --output     Sets the directory generated files are written to.  Defaults
                  to the output directory from the generation config, or the
                  IDLGLUE_OUTPUT environment variable if set.
-ll, --loglevel   Sets the generator's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
                  Defaults to the IDLGLUE_LOGLEVEL environment variable if set.
`

// Prints the usage message and exits the generator with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":         {},
	"ll":        {},
	"-output":   {},
	"-loglevel": {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument.  If this argument is positional, this
// value is empty.  The second value is the value of the argument.  If this
// value is empty, the argument is a flag.  If an argument exists, at least
// one of the returned values will be non-empty.  The final value indicates
// whether or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx < len(ap.args) {
		arg := ap.args[ap.ndx]
		ap.ndx++

		if strings.HasPrefix(arg, "-") { // flag or option
			name := arg[1:]

			if _, ok := options[name]; ok { // option
				// Make sure the option value exists.
				if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
					value := ap.args[ap.ndx]
					ap.ndx++
					return name, value, true
				}

				argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
			} else { // flag
				return name, "", true
			}
		} else { // positional
			return "", arg, true
		}
	}

	// No arguments to parse.
	return "", "", false
}

// logLevelFromName converts a log-level name to its enumerated value.  If the
// name is invalid, the program will exit.
func logLevelFromName(value string) int {
	switch value {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	case "verbose":
		return report.LogLevelVerbose
	default:
		argumentError("invalid log level: %s", value)
		return report.LogLevelVerbose
	}
}

// useArg attempts to use a single command-line argument to initialize the
// generator.  If the argument is invalid, the program will exit.
func useArg(g *Generator, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println(GlueGenID)
		os.Exit(0)
	case "ll", "-loglevel":
		report.InitReporter(logLevelFromName(value))
	case "o", "-output":
		absPath, err := filepath.Abs(value)
		if err != nil {
			argumentError("invalid output path: %s", value)
		}

		g.outputDir = absPath
	case "":
		if g.configPath == "" {
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid config path: %s", value)
			}

			g.configPath = absPath
		} else {
			argumentError("config path specified multiple times")
		}
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewGeneratorFromArgs creates a new generator instance based on the given
// command-line arguments if the arguments are valid and generation should
// continue: ie. if the user requests the generator version, then generation
// should not continue.
func NewGeneratorFromArgs() *Generator {
	g := &Generator{}

	ap := argParser{args: os.Args[1:], ndx: 0}

	// Parse all command line arguments.
	for {
		if name, value, ok := ap.nextArg(); ok {
			useArg(g, name, value)
		} else {
			break
		}
	}

	// Check to make sure a config path was specified.
	if g.configPath == "" {
		argumentError("a generation config must be specified")
	}

	// A directory path means the config file inside it.
	if finfo, err := os.Stat(g.configPath); err == nil && finfo.IsDir() {
		g.configPath = filepath.Join(g.configPath, GlueConfigFileName)
	}

	// Set default values for any optional unspecified flags, with the
	// environment supplying the fallbacks.
	report.InitReporter(logLevelFromName(env.Str("IDLGLUE_LOGLEVEL", "verbose")))

	if g.outputDir == "" {
		g.outputDir = env.Str("IDLGLUE_OUTPUT", "")
	}

	return g
}

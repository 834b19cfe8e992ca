package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/vk/plugkit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("plugkit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, heredoc.Doc(`

			plugkit - extension lifecycle simulator for a hook-dispatching host.

			Usage:
			  plugkit [options] [EXTENSIONS_PATH]

			Arguments:
			  EXTENSIONS_PATH
			    Directory scanned for extension.hcl manifests. Defaults to 'modules'.

			Options:
		`))
		flagSet.PrintDefaults()
	}

	extensionsFlag := flagSet.String("extensions", "", "Directory containing installed extensions.")
	eFlag := flagSet.String("e", "", "Directory containing installed extensions (shorthand).")
	hostVersionFlag := flagSet.String("host-version", "6.4.0", "Version the simulated host reports.")
	audienceFlag := flagSet.String("audience", "public", "Request context to simulate. Options: 'admin' or 'public'.")
	baseURLFlag := flagSet.String("base-url", "", "Public URL prefix for extension assets.")
	extraHookFlag := flagSet.String("extra-hook", "", "Additional host hook to wire at plug time.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := "modules"
	if *extensionsFlag != "" {
		path = *extensionsFlag
	} else if *eFlag != "" {
		path = *eFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	audience := strings.ToLower(*audienceFlag)
	if audience != app.AudienceAdmin && audience != app.AudiencePublic {
		return nil, false, &ExitError{Code: 2, Message: "invalid audience: must be 'admin' or 'public'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ExtensionsPath: path,
		HostVersion:    *hostVersionFlag,
		Audience:       audience,
		BaseURL:        *baseURLFlag,
		ExtraHook:      *extraHookFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

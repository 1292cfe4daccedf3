package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/recalcgo/internal/app"
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
	flagSet := flag.NewFlagSet("recalcgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
RecalcGo - An incremental formula dependency graph engine.

Usage:
  recalcgo [options] [SHEET_PATH]

Arguments:
  SHEET_PATH
    Path to a single .hcl sheet file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sheetFlag := flagSet.String("sheet", "", "Path to the sheet file or directory.")
	sFlag := flagSet.String("s", "", "Path to the sheet file or directory (shorthand).")
	reportFlag := flagSet.String("report", "order", "Report to render. Options: 'order', 'cycles', 'dirty', 'stats', 'viz', 'tree', 'impact', 'path'.")
	nodeFlag := flagSet.String("node", "", "Target node id for the 'tree', 'impact' and 'path' reports.")
	depthFlag := flagSet.Int("depth", -1, "Maximum depth for the 'tree' report. -1 is unbounded.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *sheetFlag != "" {
		path = *sheetFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Sheet path determined.", "path", path)

	if path == "" {
		slog.Debug("No sheet path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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
		SheetPath: path,
		Report:    strings.ToLower(*reportFlag),
		Node:      *nodeFlag,
		TreeDepth: *depthFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

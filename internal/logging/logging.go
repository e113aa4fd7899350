// Package logging configures the hclog logger shared by swatch commands.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	// Name is the logger name shown in each line.
	Name string
	// Verbose enables debug output.
	Verbose bool
	// Quiet limits output to errors. Verbose wins when both are set.
	// Without either, warnings and errors are shown.
	Quiet bool
	// JSON switches to JSON-formatted lines.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger for the given options.
func New(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "swatch"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Output:     output,
		Level:      Level(opts.Verbose, opts.Quiet),
		JSONFormat: opts.JSON,
	})
}

// Level maps the verbosity flags to an hclog level.
func Level(verbose, quiet bool) hclog.Level {
	switch {
	case verbose:
		return hclog.Debug
	case quiet:
		return hclog.Error
	default:
		return hclog.Warn
	}
}


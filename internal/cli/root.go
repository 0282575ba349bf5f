// Package cli implements the builder-generator CLI commands.
package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/schema"
)

var (
	logLevel   string
	schemaPath string
	typeNames  []string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "builder-generator",
	Short: "Builder API code generator for Go structs",
	Long: "builder-generator synthesizes constructors, init structs, and fluent\n" +
		"setters for annotated structs. Fields are required unless pointer-shaped\n" +
		"or carrying an explicit default; required fields are enforced at compile\n" +
		"time through the constructor signature.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogger(logLevel)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	RootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Sidecar YAML schema with per-field defaults")
	RootCmd.PersistentFlags().StringSliceVarP(&typeNames, "type", "t", nil,
		"Generate for the named structs even without a //builder:generate directive")
}

func setupLogger(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadRecords runs extraction plus the optional sidecar schema merge for
// the given package patterns.
func loadRecords(args []string, diags *diagnostic.Diagnostics) ([]*analyze.Record, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	loader := &analyze.Loader{Types: typeNames}

	records, err := loader.Load(diags, patterns...)
	if err != nil {
		return nil, err
	}

	if schemaPath != "" {
		sf, err := schema.LoadFile(schemaPath)
		if err != nil {
			return nil, err
		}

		sf.Apply(records, diags)
	}

	return records, nil
}

// reportDiagnostics logs every collected diagnostic and returns an error
// if any of them is fatal.
func reportDiagnostics(diags *diagnostic.Diagnostics) error {
	for _, d := range diags.Infos {
		log.Info(d.Message, "code", d.Code, "record", d.Record, "field", d.Field)
	}

	for _, d := range diags.Warnings {
		log.Warn(d.Message, "code", d.Code, "record", d.Record, "field", d.Field)
	}

	for _, d := range diags.Errors {
		log.Error(d.Message, "code", d.Code, "record", d.Record, "field", d.Field)
	}

	if diags.HasErrors() {
		return fmt.Errorf("generation failed for %d record(s)", len(diags.Errors))
	}

	return nil
}

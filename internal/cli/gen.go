package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/gen"
)

var (
	outputDir string
	dryRun    bool
)

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate builder files for annotated structs",
	Long: "Loads the given package patterns (default ./...), classifies the fields\n" +
		"of every selected struct, and writes a <record>_builder.go file next to\n" +
		"each declaration.",
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write generated files here instead of next to each record")
	genCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without writing any files")
	RootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var diags diagnostic.Diagnostics

	records, err := loadRecords(args, &diags)
	if err != nil {
		return err
	}

	if common.IsEmpty(records) {
		log.Warn("no builder-annotated structs found")
	}

	generator := gen.NewGenerator(gen.Config{OutputDir: outputDir})
	files := generator.GenerateAll(records, &diags)

	for _, f := range files {
		if dryRun {
			log.Info("would write", "file", f.Filename, "dir", f.Dir, "bytes", len(f.Content))
			continue
		}

		log.Debug("generated", "file", f.Filename, "dir", f.Dir, "bytes", len(f.Content))
	}

	if !dryRun {
		if err := gen.WriteFiles(files); err != nil {
			return err
		}
	}

	return reportDiagnostics(&diags)
}

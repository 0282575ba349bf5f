package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"builder-generator/internal/classify"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/synth"
)

var checkVerbose bool

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Classify and synthesize without writing files",
	Long: "Runs the classification and synthesis pipeline over the selected structs\n" +
		"and reports any errors, without touching the filesystem. Useful in CI to\n" +
		"catch invalid defaults and member collisions early.",
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Dump synthesized member specs")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var diags diagnostic.Diagnostics

	records, err := loadRecords(args, &diags)
	if err != nil {
		return err
	}

	for _, rec := range records {
		fields, err := classify.ClassifyRecord(rec)
		if err != nil {
			diags.AddErr(rec.Name, err)
			continue
		}

		res, err := synth.Synthesize(rec, fields)
		if err != nil {
			diags.AddErr(rec.Name, err)
			continue
		}

		log.Info("ok", "record", rec.Name,
			"fields", len(res.Fields), "required", len(res.Required), "members", len(res.Members))

		if checkVerbose {
			fmt.Print(spew.Sdump(res.Members))
		}
	}

	return reportDiagnostics(&diags)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tool version, overridable at link time.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the builder-generator version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("builder-generator " + Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/wordiz/cmd.version=..."
// for release builds. go install builds report the module version instead.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wordiz version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wordiz", resolveVersion())
	},
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

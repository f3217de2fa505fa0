package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags shared by every sub-command.
	schemesDir  string
	cpTablePath string
	useEmbedded bool
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "tdtcli",
	Short: "Tag Data Translation engine",
	Long: `tdtcli v` + version + `
Translate EPC identifiers between BINARY, TAG_ENCODING, PURE_IDENTITY,
LEGACY, LEGACY_AI, and ONS_HOSTNAME representations of the same coding
scheme, driven entirely by a directory of EPCglobal TDT scheme markup.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemesDir, "schemes-dir", "",
		"directory of TDT scheme XML files (required unless --use-embedded)")
	rootCmd.PersistentFlags().StringVar(&cpTablePath, "company-prefix-table", "",
		"path to a ManagerTranslation.xml company-prefix table")
	rootCmd.PersistentFlags().BoolVar(&useEmbedded, "use-embedded", false,
		"use the small bundled sample scheme set and company-prefix table")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"output machine-readable JSON instead of a table")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "tdtcli: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}

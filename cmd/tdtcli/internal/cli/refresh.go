package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the scheme directory and company-prefix table, then report success",
	Args:  cobra.NoArgs,
	Run:   runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) {
	e, err := buildEngine()
	if err != nil {
		fail("%v", err)
	}
	if err := e.Refresh(); err != nil {
		fail("refresh: %v", err)
	}
	count := len(e.Schemes())
	if outputJSON {
		printJSON(map[string]int{"schemesLoaded": count})
		return
	}
	fmt.Printf("refreshed: %d scheme(s) loaded\n", count)
}

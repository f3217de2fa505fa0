package cli

import (
	"github.com/spf13/cobra"
)

type schemeRow struct {
	Name           string
	TagLength      int
	OptionKeyField string
	Levels         []string
}

var schemesCmd = &cobra.Command{
	Use:   "list-schemes",
	Short: "List the schemes a scheme directory defines",
	Args:  cobra.NoArgs,
	Run:   runListSchemes,
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}

func runListSchemes(cmd *cobra.Command, args []string) {
	e, err := buildEngine()
	if err != nil {
		fail("%v", err)
	}

	rows := make([]schemeRow, 0, len(e.Schemes()))
	for _, info := range e.Schemes() {
		rows = append(rows, schemeRow(info))
	}

	if outputJSON {
		printJSON(rows)
		return
	}
	printSchemeList(rows)
}

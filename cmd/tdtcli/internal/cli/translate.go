package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	hintsFlag  string
	targetFlag string
	verbose    bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <identifier>",
	Short: "Translate an EPC identifier to a target representation",
	Args:  cobra.ExactArgs(1),
	Run:   runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(&hintsFlag, "hints", "",
		`";"-separated "key=value" disambiguation hints (filter, gs1companyprefixlength, taglength, ...)`)
	translateCmd.Flags().StringVar(&targetFlag, "target", "",
		"target representation: BINARY, TAG_ENCODING, PURE_IDENTITY, LEGACY, LEGACY_AI, ONS_HOSTNAME")
	translateCmd.Flags().BoolVar(&verbose, "verbose", false,
		"print the input, hints and target alongside the result as a table")
	translateCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) {
	identifier := args[0]

	e, err := buildEngine()
	if err != nil {
		fail("%v", err)
	}

	out, err := e.TranslateStrings(identifier, hintsFlag, targetFlag)
	if err != nil {
		fail("translate: %v", err)
	}

	if outputJSON {
		printJSON(map[string]string{
			"input":  identifier,
			"target": targetFlag,
			"output": out,
		})
		return
	}

	if verbose {
		printVerboseTranslation(identifier, hintsFlag, targetFlag, out)
		return
	}

	fmt.Println(out)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("encode JSON: %v", err)
	}
}

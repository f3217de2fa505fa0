package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	colorHeader = text.Colors{text.FgCyan, text.Bold}
	colorLabel  = text.Colors{text.FgYellow}
	colorValue  = text.Colors{text.FgWhite}
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	style := table.StyleRounded
	style.Color.Header = colorHeader
	style.Color.Row = colorValue
	style.Options.SeparateRows = false
	t.SetStyle(style)
	return t
}

// printVerboseTranslation renders the resolved translation request and
// its result as a table, the way the teacher's output package renders
// one labeled fact per row rather than a single formatted string.
func printVerboseTranslation(identifier, hints, target, result string) {
	t := newTable()
	t.SetTitle("TRANSLATE")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 12},
		{Number: 2, Colors: colorValue, WidthMin: 40},
	})
	t.AppendRow(table.Row{"Input", identifier})
	t.AppendRow(table.Row{"Hints", valueOrPlaceholder(hints)})
	t.AppendRow(table.Row{"Target", target})
	t.AppendRow(table.Row{"Output", result})
	t.Render()
}

func valueOrPlaceholder(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func printSchemeList(rows []schemeRow) {
	t := newTable()
	t.SetTitle("SCHEMES")
	t.AppendHeader(table.Row{"Scheme", "Tag Length", "Option Key Field", "Levels"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.TagLength, r.OptionKeyField, fmt.Sprintf("%v", r.Levels)})
	}
	t.Render()
}

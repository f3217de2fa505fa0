// Command tdtcli is the reference command-line front end for the TDT
// engine: translate a single identifier, list the schemes a directory
// of TDT markup defines, or exercise a live engine's Refresh cycle.
package main

import "github.com/epcglobal/tdtengine/cmd/tdtcli/internal/cli"

func main() {
	cli.Execute()
}

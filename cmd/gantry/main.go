package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gantryci/gantry/cmd/gantry/commands"
)

const (
	cmdName = "gantry"

	shortDesc = "The Gantry build-values CLI."
	longDesc  = `Gantry publishes CI build values as XML artifacts.

Projects declare dashboard plugin links and build-values export tasks in an
XML project file (gantry.xml by default). Each export task renders an ordered
list of name/value pairs into a standalone XML document, written atomically
so downstream build steps never observe partial artifacts.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}

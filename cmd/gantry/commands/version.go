package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gantryci/gantry/pkg/version"
)

// GetVersionString returns the full gantry version string.
func GetVersionString() string {
	return fmt.Sprintf("%s+%s", version.Version, version.Revision)
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the gantry CLI",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(GetVersionString())
		},
	}
}

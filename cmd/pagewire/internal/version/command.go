package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pagewire/pagewire/cmd/pagewire/internal"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pagewire %s (%s)\n", internal.GetVersion(), runtime.Version())
		},
	}
}

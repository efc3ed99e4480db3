package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/nmsweep/internal/core"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nmsweep %s (%s) built %s\n", appVersion, appCommit, appDate)
			fmt.Fprintf(out, "%s, %s\n", runtime.Version(), core.Platform())
		},
	}
}

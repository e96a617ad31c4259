package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"portable-deployer/internal/types"
)

func newVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List Python versions with an embeddable distribution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printVersionTable(cmd.OutOrStdout())
			return nil
		},
	}
}

func printVersionTable(w io.Writer) {
	fmt.Fprintln(w, "\nAvailable Python versions (with embeddable ZIP):")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-8s %-12s %s\n", "Minor", "Patch", "Description")
	fmt.Fprintf(w, "  %-8s %-12s %s\n", "-----", "-----", "-----------")
	for _, minor := range types.SupportedMinors() {
		fmt.Fprintf(w, "  %-8s %-12s %s\n", minor, types.ResolvePatch(minor), types.VersionLabel(minor))
	}
	fmt.Fprintln(w)
}

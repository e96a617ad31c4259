package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"portable-deployer/internal/app"
	"portable-deployer/internal/shared"
	"portable-deployer/internal/types"
)

type installOptions struct {
	Dir          string
	Requirements string
	ExtraPipArgs string
	Quiet        bool
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install requirements into a provisioned runtime",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Bundle directory containing python_embedded")
	cmd.Flags().StringVarP(&opts.Requirements, "requirements", "r", "requirements.txt", "Path to requirements.txt file")
	cmd.Flags().StringVar(&opts.ExtraPipArgs, "extra-pip-args", "", "Extra pip install arguments, comma-separated")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress progress output")

	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	out := cmd.OutOrStdout()

	sink := types.ProgressSink(nil)
	if !opts.Quiet {
		sink = func(event types.ProgressEvent) {
			fmt.Fprintf(out, "  [%3d%%] %s\n", event.Percent, event.Detail)
		}
	}

	service := app.NewService()
	_, err := service.InstallRequirements(ctx, app.InstallRequest{
		BaseDir:          opts.Dir,
		RequirementsPath: opts.Requirements,
		ExtraPipArgs:     shared.SplitCommaList(opts.ExtraPipArgs),
		Sink:             sink,
	})
	return err
}

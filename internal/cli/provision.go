package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portable-deployer/internal/app"
	"portable-deployer/internal/shared"
	"portable-deployer/internal/types"
)

type provisionOptions struct {
	Dir       string
	Python    string
	ExtraPth  string
	NoTkinter bool
	Quiet     bool
}

func newProvisionCommand() *cobra.Command {
	opts := provisionOptions{}
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Download and configure an embedded Python runtime locally",
		Long: "Provision performs the same setup the generated install.bat does on a\n" +
			"target machine: download the embeddable runtime, configure its module\n" +
			"search path, bootstrap pip, and optionally install the Tk toolkit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Bundle directory (runtime goes in <dir>/python_embedded)")
	cmd.Flags().StringVarP(&opts.Python, "python", "p", types.DefaultMinorVersion, "Python minor version")
	cmd.Flags().StringVar(&opts.ExtraPth, "extra-pth", "", "Extra ._pth paths, comma-separated")
	cmd.Flags().BoolVar(&opts.NoTkinter, "no-tkinter", false, "Skip tkinter setup")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress progress output")

	_ = viper.BindPFlag("provision_dir", cmd.Flags().Lookup("dir"))

	return cmd
}

func runProvision(ctx context.Context, cmd *cobra.Command, opts provisionOptions) error {
	out := cmd.OutOrStdout()

	sink := types.ProgressSink(nil)
	if !opts.Quiet {
		sink = func(event types.ProgressEvent) {
			fmt.Fprintf(out, "  [%3d%%] %s\n", event.Percent, event.Detail)
		}
	}

	service := app.NewService()
	result, err := service.Provision(ctx, app.ProvisionRequest{
		BaseDir:       resolveString(cmd, opts.Dir, "provision_dir", "dir"),
		PythonMinor:   resolveString(cmd, opts.Python, "python", "python"),
		ExtraPthPaths: shared.SplitCommaList(opts.ExtraPth),
		SetupTkinter:  !opts.NoTkinter,
		Sink:          sink,
	})
	if err != nil {
		return err
	}
	if !opts.Quiet {
		fmt.Fprintf(out, "\n  Runtime ready at: %s\n", result.RuntimeDir)
		if !opts.NoTkinter && !result.TkinterReady {
			fmt.Fprintln(out, "  WARNING: tkinter is not available; GUI packages may not work.")
		}
	}
	return nil
}

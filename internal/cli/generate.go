package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"portable-deployer/internal/app"
	"portable-deployer/internal/shared"
	"portable-deployer/internal/types"
)

type generateOptions struct {
	SpecFile           string
	Name               string
	Python             string
	Output             string
	EntryPoint         string
	LauncherName       string
	Requirements       string
	RequirementsInline string
	Git                bool
	FFmpeg             bool
	NoTkinter          bool
	ExtraPth           string
	ExtraPipArgs       string
	ListVersions       bool
	Quiet              bool
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a self-contained deployment package",
		Example: "  portable-deployer generate --name MyApp --python 3.12\n" +
			"  portable-deployer generate --name WebServer --python 3.13 --requirements req.txt --git\n" +
			"  portable-deployer generate --list-versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SpecFile, "spec", "", "Deployment spec file (YAML); flags override its values")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Project name (required unless --list-versions)")
	cmd.Flags().StringVarP(&opts.Python, "python", "p", types.DefaultMinorVersion, "Python minor version")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "output", "Output directory")
	cmd.Flags().StringVarP(&opts.EntryPoint, "entry-point", "e", "app.py", "Python entry point filename")
	cmd.Flags().StringVar(&opts.LauncherName, "launcher-name", "launcher.bat", "Launcher batch file name")
	cmd.Flags().StringVarP(&opts.Requirements, "requirements", "r", "", "Path to requirements.txt file")
	cmd.Flags().StringVar(&opts.RequirementsInline, "requirements-inline", "", "Inline requirements, comma-separated")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "Include portable Git")
	cmd.Flags().BoolVar(&opts.FFmpeg, "ffmpeg", false, "Include portable FFmpeg")
	cmd.Flags().BoolVar(&opts.NoTkinter, "no-tkinter", false, "Exclude tkinter setup")
	cmd.Flags().StringVar(&opts.ExtraPth, "extra-pth", "", "Extra ._pth paths, comma-separated")
	cmd.Flags().StringVar(&opts.ExtraPipArgs, "extra-pip-args", "", "Extra pip install arguments")
	cmd.Flags().BoolVar(&opts.ListVersions, "list-versions", false, "List available Python versions and exit")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress progress output")

	_ = viper.BindPFlag("name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("python", cmd.Flags().Lookup("python"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("entry_point", cmd.Flags().Lookup("entry-point"))
	_ = viper.BindPFlag("launcher_name", cmd.Flags().Lookup("launcher-name"))
	_ = viper.BindPFlag("extra_pip_args", cmd.Flags().Lookup("extra-pip-args"))
	_ = viper.BindPFlag("include_git", cmd.Flags().Lookup("git"))
	_ = viper.BindPFlag("include_ffmpeg", cmd.Flags().Lookup("ffmpeg"))

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	out := cmd.OutOrStdout()

	// --list-versions wins over everything else.
	if opts.ListVersions {
		printVersionTable(out)
		return nil
	}

	service := app.NewService()
	config, err := buildPackageConfig(cmd, service, opts)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printConfigSummary(out, config)
	}

	sink := types.ProgressSink(nil)
	if !opts.Quiet {
		sink = func(event types.ProgressEvent) {
			fmt.Fprintf(out, "  [%3d%%] %s\n", event.Percent, event.Detail)
		}
	}

	result, err := service.Generate(ctx, app.GenerateRequest{Config: config, Sink: sink})
	if err != nil {
		return err
	}
	if !opts.Quiet {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Package generated at: %s\n", result.OutputPath)
		fmt.Fprintln(out, "  Run install.bat in that folder to deploy.")
		fmt.Fprintln(out)
	}
	return nil
}

func buildPackageConfig(cmd *cobra.Command, service app.Service, opts generateOptions) (types.PackageConfig, error) {
	config := types.DefaultPackageConfig()
	config.ProjectName = ""

	fromSpec := opts.SpecFile != ""
	if fromSpec {
		loaded, err := service.ConfigLoader.Load(opts.SpecFile)
		if err != nil {
			return types.PackageConfig{}, err
		}
		config = loaded
	}

	// Explicit flags (and viper-provided values) override the spec file;
	// without a spec file the flag defaults apply directly.
	if name := resolveString(cmd, opts.Name, "name", "name"); name != "" {
		config.ProjectName = name
	}
	if strings.TrimSpace(config.ProjectName) == "" {
		return types.PackageConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--name is required (use --list-versions to see options)")
	}
	if !fromSpec || flagChanged(cmd, "python") {
		config.PythonMinor = resolveString(cmd, opts.Python, "python", "python")
	}
	if !fromSpec || flagChanged(cmd, "output") {
		config.OutputDir = resolveString(cmd, opts.Output, "output", "output")
	}
	if !fromSpec || flagChanged(cmd, "entry-point") {
		config.EntryPoint = resolveString(cmd, opts.EntryPoint, "entry_point", "entry-point")
	}
	if !fromSpec || flagChanged(cmd, "launcher-name") {
		config.LauncherName = resolveString(cmd, opts.LauncherName, "launcher_name", "launcher-name")
	}
	if !fromSpec || flagChanged(cmd, "git") {
		config.IncludeGit = resolveBool(cmd, opts.Git, "include_git", "git")
	}
	if !fromSpec || flagChanged(cmd, "ffmpeg") {
		config.IncludeFFmpeg = resolveBool(cmd, opts.FFmpeg, "include_ffmpeg", "ffmpeg")
	}
	if !fromSpec || flagChanged(cmd, "no-tkinter") {
		config.IncludeTkinter = !opts.NoTkinter
	}
	if !fromSpec || flagChanged(cmd, "extra-pth") {
		config.ExtraPthPaths = shared.SplitCommaList(opts.ExtraPth)
	}
	if !fromSpec || flagChanged(cmd, "extra-pip-args") {
		config.ExtraPipArgs = resolveString(cmd, opts.ExtraPipArgs, "extra_pip_args", "extra-pip-args")
	}

	requirements, err := loadRequirements(opts)
	if err != nil {
		return types.PackageConfig{}, err
	}
	if requirements != "" {
		config.Requirements = requirements
	}
	return config, nil
}

func loadRequirements(opts generateOptions) (string, error) {
	if opts.Requirements != "" {
		content, err := os.ReadFile(opts.Requirements)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("Requirements file not found: " + opts.Requirements).
				WithCause(err)
		}
		return string(content), nil
	}
	if opts.RequirementsInline != "" {
		return strings.Join(shared.SplitCommaList(opts.RequirementsInline), "\n"), nil
	}
	return "", nil
}

func printConfigSummary(out io.Writer, config types.PackageConfig) {
	divider := strings.Repeat("=", 55)
	fmt.Fprintln(out)
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, "  Portable Python Deployer")
	fmt.Fprintln(out, divider)
	fmt.Fprintf(out, "  Project:     %s\n", config.ProjectName)
	fmt.Fprintf(out, "  Python:      %s (%s)\n", config.PatchVersion(), config.PythonMinor)
	fmt.Fprintf(out, "  Entry point: %s\n", config.EntryPoint)
	fmt.Fprintf(out, "  Output:      %s\n", config.OutputPath())
	fmt.Fprintf(out, "  Tkinter:     %s\n", yesNo(config.IncludeTkinter))
	fmt.Fprintf(out, "  Git:         %s\n", yesNo(config.IncludeGit))
	fmt.Fprintf(out, "  FFmpeg:      %s\n", yesNo(config.IncludeFFmpeg))
	if count := requirementCount(config.Requirements); count > 0 {
		fmt.Fprintf(out, "  Requirements: %d package(s)\n", count)
	}
	fmt.Fprintln(out, strings.Repeat("-", 55))
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func requirementCount(requirements string) int {
	count := 0
	for _, line := range strings.Split(requirements, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	return count
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"portable-deployer/internal/core"
	"portable-deployer/internal/templates"
	"portable-deployer/internal/types"
)

const defaultRequirements = "# Add your dependencies here\n# example: requests>=2.31.0\n"

// Generate assembles a deployment package: installer script, launcher,
// config stub, requirements manifest, and a created-once entry-point
// stub. Files already written stay on disk when a later step fails.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	config := req.Config
	sink := req.Sink

	if err := config.Validate(ctx); err != nil {
		sink.Emit(0, types.PhaseError, "Error: "+err.Error())
		return GenerateResult{}, err
	}

	outputPath := config.OutputPath()
	result := GenerateResult{OutputPath: outputPath}

	sink.Emit(0, types.PhaseInit, "Creating package directory...")
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		wrapped := errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create package directory").
			WithCause(err)
		sink.Emit(0, types.PhaseError, "Error: "+wrapped.Error())
		return result, wrapped
	}

	steps := []struct {
		percent int
		detail  string
		run     func() (string, error)
	}{
		{10, "Generating install.bat...", func() (string, error) { return s.writeInstallBat(config, outputPath) }},
		{30, "Generating " + config.LauncherName + "...", func() (string, error) { return s.writeLauncherBat(config, outputPath) }},
		{50, "Generating config.py...", func() (string, error) { return s.writeConfigPy(config, outputPath) }},
		{70, "Writing requirements.txt...", func() (string, error) { return s.writeRequirements(config, outputPath) }},
		{85, "Creating entry point stub...", func() (string, error) { return s.writeEntryPointStub(config, outputPath) }},
	}
	for _, step := range steps {
		sink.Emit(step.percent, types.PhaseWrite, step.detail)
		written, err := step.run()
		if err != nil {
			sink.Emit(0, types.PhaseError, "Error: "+err.Error())
			return result, err
		}
		if written != "" {
			result.Files = append(result.Files, written)
		}
	}

	log.Ctx(ctx).Debug().Str("output", outputPath).Int("files", len(result.Files)).Msg("package generated")
	sink.Emit(100, types.PhaseDone, "Package generated at: "+outputPath)
	return result, nil
}

func (s Service) writeInstallBat(config types.PackageConfig, outputPath string) (string, error) {
	tkEcho, gitEcho, ffEcho := core.FeatureEchoLines(config.IncludeTkinter, config.IncludeGit, config.IncludeFFmpeg)

	var gitVars, ffmpegVars, tkSection, gitSection, ffSection string
	if config.IncludeGit {
		gitVars = core.GitVars()
		gitSection = core.GitSection()
	}
	if config.IncludeFFmpeg {
		ffmpegVars = core.FFmpegVars()
		ffSection = core.FFmpegSection()
	}
	if config.IncludeTkinter {
		tkSection = core.TkinterSection()
	}

	vars := map[string]string{
		"PROJECT_NAME":    config.ProjectName,
		"PYTHON_VERSION":  config.PatchVersion(),
		"PYTHON_URL":      config.RuntimeURL(),
		"ENTRY_POINT":     config.EntryPoint,
		"LAUNCHER_NAME":   config.LauncherName,
		"PTH_ZIP_NAME":    config.StdlibZipName(),
		"PTH_EXTRA":       core.PthExtraFragment(config.ExtraPthPaths),
		"TKINTER_ECHO":    tkEcho,
		"GIT_ECHO":        gitEcho,
		"FFMPEG_ECHO":     ffEcho,
		"GIT_VARS":        gitVars,
		"FFMPEG_VARS":     ffmpegVars,
		"TKINTER_SECTION": tkSection,
		"GIT_SECTION":     gitSection,
		"FFMPEG_SECTION":  ffSection,
		"PATH_SETUP":      core.InstallPathSetup(config.IncludeGit, config.IncludeFFmpeg),
		"EXTRA_PIP_ARGS":  config.ExtraPipArgs,
	}
	return renderTemplateTo(templates.InstallBat, filepath.Join(outputPath, "install.bat"), vars)
}

func (s Service) writeLauncherBat(config types.PackageConfig, outputPath string) (string, error) {
	vars := map[string]string{
		"PROJECT_NAME":  config.ProjectName,
		"ENTRY_POINT":   config.EntryPoint,
		"LAUNCHER_NAME": config.LauncherName,
		"PATH_SETUP":    core.LauncherPathSetup(config.IncludeGit, config.IncludeFFmpeg),
	}
	return renderTemplateTo(templates.LauncherBat, filepath.Join(outputPath, config.LauncherName), vars)
}

func (s Service) writeConfigPy(config types.PackageConfig, outputPath string) (string, error) {
	pathVars, resolveFuncs, resolvedVars := core.ConfigStubFragments(config.IncludeGit, config.IncludeFFmpeg)
	vars := map[string]string{
		"PROJECT_NAME":        config.ProjectName,
		"EXTRA_PATH_VARS":     pathVars,
		"EXTRA_RESOLVE_FUNCS": resolveFuncs,
		"EXTRA_RESOLVED_VARS": resolvedVars,
	}
	return renderTemplateTo(templates.ConfigPy, filepath.Join(outputPath, "config.py"), vars)
}

// writeRequirements trims the configured requirements, falls back to a
// commented placeholder, and always ends the file with exactly one
// trailing newline.
func (s Service) writeRequirements(config types.PackageConfig, outputPath string) (string, error) {
	content := strings.TrimSpace(config.Requirements)
	if content == "" {
		content = strings.TrimSuffix(defaultRequirements, "\n")
	}
	path := filepath.Join(outputPath, "requirements.txt")
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write requirements.txt").
			WithCause(err)
	}
	return path, nil
}

// writeEntryPointStub writes the application skeleton only when no file
// exists at the entry-point path yet.
func (s Service) writeEntryPointStub(config types.PackageConfig, outputPath string) (string, error) {
	path := filepath.Join(outputPath, config.EntryPoint)
	if _, err := os.Stat(path); err == nil {
		return "", nil
	}
	content := core.EntryPointStub(config.ProjectName, config.IncludeTkinter)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write entry point stub").
			WithCause(err)
	}
	return path, nil
}

func renderTemplateTo(name string, dest string, vars map[string]string) (string, error) {
	raw, err := templates.FS.ReadFile(name)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("embedded template %s is missing", name)).
			WithCause(err)
	}
	rendered := core.Render(string(raw), vars)
	if err := os.WriteFile(dest, []byte(rendered), 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write "+filepath.Base(dest)).
			WithCause(err)
	}
	return dest, nil
}

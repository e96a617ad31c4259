package types

import (
	"context"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
)

// PackageConfig is the immutable input to package generation. Front ends
// construct it once per request; the assembler only ever reads it.
type PackageConfig struct {
	ProjectName    string   `yaml:"project_name"`
	PythonMinor    string   `yaml:"python_minor"`
	OutputDir      string   `yaml:"output_dir"`
	EntryPoint     string   `yaml:"entry_point"`
	LauncherName   string   `yaml:"launcher_name"`
	Requirements   string   `yaml:"requirements"`
	IncludeGit     bool     `yaml:"include_git"`
	IncludeFFmpeg  bool     `yaml:"include_ffmpeg"`
	IncludeTkinter bool     `yaml:"include_tkinter"`
	ExtraPthPaths  []string `yaml:"extra_pth_paths"`
	ExtraPipArgs   string   `yaml:"extra_pip_args"`
}

// DefaultPackageConfig mirrors the defaults the CLI exposes.
func DefaultPackageConfig() PackageConfig {
	return PackageConfig{
		ProjectName:    "MyProject",
		PythonMinor:    DefaultMinorVersion,
		OutputDir:      ".",
		EntryPoint:     "app.py",
		LauncherName:   "launcher.bat",
		IncludeTkinter: true,
	}
}

// PatchVersion resolves the selected minor to its full patch version.
func (c PackageConfig) PatchVersion() string {
	return ResolvePatch(c.PythonMinor)
}

// RuntimeURL is the embeddable runtime download URL for the selected
// version.
func (c PackageConfig) RuntimeURL() string {
	return EmbedZipURL(c.PatchVersion())
}

// StdlibZipName is the standard-library archive name for the selected
// minor version.
func (c PackageConfig) StdlibZipName() string {
	return StdlibZipName(c.PythonMinor)
}

// OutputPath is the package directory: the output dir joined with the
// project name, spaces replaced by underscores.
func (c PackageConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, strings.ReplaceAll(c.ProjectName, " ", "_"))
}

// Validate checks the config before generation starts.
func (c PackageConfig) Validate(ctx context.Context) error {
	assert.NotEmpty(ctx, c.EntryPoint, "entry point must be set")
	assert.NotEmpty(ctx, c.LauncherName, "launcher name must be set")
	if strings.TrimSpace(c.ProjectName) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project name is required")
	}
	if !IsSupportedMinor(c.PythonMinor) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported python version: " + c.PythonMinor)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	for _, p := range c.ExtraPthPaths {
		if strings.TrimSpace(p) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("extra pth entries must not be blank")
		}
	}
	return nil
}

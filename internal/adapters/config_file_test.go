package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ConfigFileAdapter
// ---------------------------------------------------------------------------

func TestConfigFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project_name: Video Tool
python_minor: "3.13"
output_dir: dist
include_git: true
include_ffmpeg: true
extra_pth_paths:
  - plugins
extra_pip_args: --no-cache-dir
`), 0o644))

	config, err := NewConfigFileAdapter().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Video Tool", config.ProjectName)
	assert.Equal(t, "3.13", config.PythonMinor)
	assert.Equal(t, "dist", config.OutputDir)
	assert.True(t, config.IncludeGit)
	assert.True(t, config.IncludeFFmpeg)
	assert.Equal(t, []string{"plugins"}, config.ExtraPthPaths)
	assert.Equal(t, "--no-cache-dir", config.ExtraPipArgs)
}

func TestConfigFileLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_name: Minimal\n"), 0o644))

	config, err := NewConfigFileAdapter().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Minimal", config.ProjectName)
	assert.Equal(t, "3.12", config.PythonMinor)
	assert.Equal(t, "app.py", config.EntryPoint)
	assert.Equal(t, "launcher.bat", config.LauncherName)
	assert.True(t, config.IncludeTkinter)
}

func TestConfigFileLoadMissingFile(t *testing.T) {
	_, err := NewConfigFileAdapter().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestConfigFileLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_name: [unclosed"), 0o644))

	_, err := NewConfigFileAdapter().Load(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

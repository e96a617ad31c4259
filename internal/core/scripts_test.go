package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"portable-deployer/internal/types"
)

// ---------------------------------------------------------------------------
// Batch fragments
// ---------------------------------------------------------------------------

func TestFeatureEchoLines(t *testing.T) {
	tk, git, ff := FeatureEchoLines(true, false, true)
	assert.Contains(t, tk, "Tkinter GUI framework")
	assert.Empty(t, git)
	assert.Contains(t, ff, "Portable FFmpeg")

	tk, git, ff = FeatureEchoLines(false, true, false)
	assert.Empty(t, tk)
	assert.Contains(t, git, "Portable Git")
	assert.Empty(t, ff)
}

func TestGitVarsCarryReleaseURL(t *testing.T) {
	vars := GitVars()
	assert.Contains(t, vars, "GIT_VERSION="+types.GitVersion)
	assert.Contains(t, vars, types.GitURL)
	assert.Contains(t, vars, `set "GIT_DIR=%SCRIPT_DIR%git_portable"`)
}

func TestFFmpegVarsCarryReleaseURL(t *testing.T) {
	vars := FFmpegVars()
	assert.Contains(t, vars, types.FFmpegURL)
	assert.Contains(t, vars, `set "FFMPEG_DIR=%SCRIPT_DIR%ffmpeg_portable"`)
}

func TestPthExtraFragment(t *testing.T) {
	assert.Empty(t, PthExtraFragment(nil))
	assert.Equal(t, ", 'plugins'", PthExtraFragment([]string{"plugins"}))
	assert.Equal(t, ", 'a', 'b'", PthExtraFragment([]string{"a", "b"}))
}

func TestInstallPathSetup(t *testing.T) {
	assert.Empty(t, InstallPathSetup(false, false))

	both := InstallPathSetup(true, true)
	assert.Contains(t, both, `set "PATH=%GIT_DIR%\cmd;%PATH%"`)
	assert.Contains(t, both, `set "PATH=%FFMPEG_DIR%\bin;%PATH%"`)
	assert.Less(t, strings.Index(both, "GIT_DIR"), strings.Index(both, "FFMPEG_DIR"))
}

func TestLauncherPathSetupIsQuiet(t *testing.T) {
	setup := LauncherPathSetup(true, true)
	assert.Contains(t, setup, `git_portable\cmd`)
	assert.Contains(t, setup, `ffmpeg_portable\bin`)
	assert.NotContains(t, setup, "echo")
}

// ---------------------------------------------------------------------------
// Feature sections
// ---------------------------------------------------------------------------

func TestTkinterSectionShape(t *testing.T) {
	section := TkinterSection()
	assert.Contains(t, section, `import _tkinter`)
	assert.Contains(t, section, "tcltk.msi")
	assert.Contains(t, section, "msiexec.exe")
	assert.Contains(t, section, ":tkinter_done")
	assert.True(t, strings.HasSuffix(section, "\n\n"))
}

func TestGitSectionSkipsWhenInstalled(t *testing.T) {
	section := GitSection()
	assert.Contains(t, section, `if exist "%GIT_EXE%"`)
	assert.Contains(t, section, "goto :git_done")
	assert.Contains(t, section, "Expand-Archive")
}

func TestFFmpegSectionFlattensInnerDirectory(t *testing.T) {
	section := FFmpegSection()
	assert.Contains(t, section, "Get-ChildItem $tempDir -Directory")
	assert.Contains(t, section, `%FFMPEG_DIR%\bin`)
	assert.Contains(t, section, ":ffmpeg_done")
}

// ---------------------------------------------------------------------------
// config.py fragments
// ---------------------------------------------------------------------------

func TestConfigStubFragmentsNone(t *testing.T) {
	pathVars, resolveFuncs, resolvedVars := ConfigStubFragments(false, false)
	assert.Empty(t, pathVars)
	assert.Empty(t, resolveFuncs)
	assert.Empty(t, resolvedVars)
}

func TestConfigStubFragmentsGitAndFFmpeg(t *testing.T) {
	pathVars, resolveFuncs, resolvedVars := ConfigStubFragments(true, true)
	assert.Contains(t, pathVars, "GIT_PORTABLE_DIR")
	assert.Contains(t, pathVars, "FFMPEG_PORTABLE_DIR")
	assert.Contains(t, resolveFuncs, "_resolve_git_path")
	assert.Contains(t, resolveFuncs, "_resolve_ffmpeg_path")
	assert.Contains(t, resolvedVars, "GIT_PATH")
	assert.Contains(t, resolvedVars, "FFMPEG_PATH")
}

// ---------------------------------------------------------------------------
// Entry point stub
// ---------------------------------------------------------------------------

func TestEntryPointStubTkinter(t *testing.T) {
	stub := EntryPointStub("Demo App", true)
	assert.Contains(t, stub, "import tkinter as tk")
	assert.Contains(t, stub, `root.title("Demo App")`)
	assert.Contains(t, stub, "Welcome to Demo App!")
	assert.Contains(t, stub, `if __name__ == "__main__":`)
}

func TestEntryPointStubConsole(t *testing.T) {
	stub := EntryPointStub("Demo", false)
	assert.NotContains(t, stub, "tkinter")
	assert.Contains(t, stub, `print("Welcome to Demo!")`)
}

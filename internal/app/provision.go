package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"portable-deployer/internal/core"
	"portable-deployer/internal/ports"
	"portable-deployer/internal/types"
)

// runtimeLayout names the paths the provisioner works with inside a
// bundle directory.
type runtimeLayout struct {
	baseDir      string
	runtimeDir   string
	pythonExe    string
	sitePackages string
}

func newRuntimeLayout(baseDir string) runtimeLayout {
	runtimeDir := filepath.Join(baseDir, "python_embedded")
	return runtimeLayout{
		baseDir:      baseDir,
		runtimeDir:   runtimeDir,
		pythonExe:    filepath.Join(runtimeDir, "python.exe"),
		sitePackages: filepath.Join(runtimeDir, "Lib", "site-packages"),
	}
}

func (l runtimeLayout) installed() bool {
	if _, err := os.Stat(l.pythonExe); err != nil {
		return false
	}
	if _, err := os.Stat(l.sitePackages); err != nil {
		return false
	}
	return true
}

// pthFile returns the runtime's single python*._pth file, or "" when
// none exists.
func (l runtimeLayout) pthFile() string {
	matches, err := filepath.Glob(filepath.Join(l.runtimeDir, "python*._pth"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

// Provision brings BaseDir/python_embedded to a usable state: runtime
// binary present, search path configured, site-packages created, pip
// bootstrapped, and optionally the Tk toolkit installed. Every step
// checks prior state first, so re-invoking after a failure resumes
// where the previous run left off. Nothing is retried automatically.
func (s Service) Provision(ctx context.Context, req ProvisionRequest) (ProvisionResult, error) {
	layout := newRuntimeLayout(req.BaseDir)
	sink := req.Sink
	result := ProvisionResult{RuntimeDir: layout.runtimeDir}

	if !types.IsSupportedMinor(req.PythonMinor) {
		err := errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported python version: " + req.PythonMinor)
		sink.Emit(0, types.PhaseError, "Error setting up Python: "+err.Error())
		return result, err
	}
	patch := types.ResolvePatch(req.PythonMinor)

	if layout.installed() && s.hasPip(ctx, layout) {
		sink.Emit(100, types.PhaseDone, "Embedded Python already installed")
		result.AlreadyProvisioned = true
		result.TkinterReady = s.probeImport(ctx, layout, "_tkinter")
		return result, nil
	}

	if err := s.provisionSteps(ctx, req, layout, patch, &result); err != nil {
		sink.Emit(0, types.PhaseError, "Error setting up Python: "+err.Error())
		return result, err
	}
	sink.Emit(100, types.PhaseDone, "Embedded Python ready")
	return result, nil
}

func (s Service) provisionSteps(ctx context.Context, req ProvisionRequest, layout runtimeLayout, patch string, result *ProvisionResult) error {
	sink := req.Sink

	if _, err := os.Stat(layout.pythonExe); err != nil {
		sink.Emit(0, types.PhaseDownload, fmt.Sprintf("Downloading Python %s...", patch))
		zipPath := filepath.Join(layout.baseDir, "python_embedded.zip")
		if err := s.Downloader.Download(ctx, ports.DownloadSpec{
			URL:         types.EmbedZipURL(patch),
			Dest:        zipPath,
			Label:       "Python " + patch,
			PercentFrom: 5,
			PercentTo:   40,
		}, sink); err != nil {
			return err
		}

		sink.Emit(42, types.PhaseExtract, "Extracting Python...")
		if err := s.Extractor.Extract(zipPath, layout.runtimeDir); err != nil {
			return err
		}
		_ = os.Remove(zipPath)
	}

	sink.Emit(50, types.PhaseConfigure, "Configuring Python paths...")
	if err := s.configureSearchPath(layout, req.PythonMinor, req.ExtraPthPaths); err != nil {
		return err
	}

	if err := os.MkdirAll(layout.sitePackages, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create site-packages directory").
			WithCause(err)
	}

	if !s.hasPip(ctx, layout) {
		sink.Emit(55, types.PhaseBootstrap, "Bootstrapping pip...")
		if err := s.bootstrapPip(ctx, layout, sink); err != nil {
			return err
		}
	}

	if req.SetupTkinter {
		sink.Emit(80, types.PhaseToolkit, "Setting up tkinter...")
		result.TkinterReady = s.setupTkinter(ctx, layout, patch, sink)
	}

	log.Ctx(ctx).Debug().Str("runtime", layout.runtimeDir).Msg("provisioning completed")
	return nil
}

// configureSearchPath overwrites the runtime's ._pth file with the fixed
// prefix, the caller's extra entries, and the import-site trailer.
func (s Service) configureSearchPath(layout runtimeLayout, minor string, extraPaths []string) error {
	pth := layout.pthFile()
	if pth == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("could not find python*._pth file in embedded Python")
	}

	zipName := ""
	if matches, err := filepath.Glob(filepath.Join(layout.runtimeDir, "python*.zip")); err == nil && len(matches) > 0 {
		sort.Strings(matches)
		zipName = filepath.Base(matches[0])
	}
	if zipName == "" {
		zipName = types.StdlibZipName(minor)
	}

	content, err := core.SearchPathContent(zipName, extraPaths)
	if err != nil {
		return err
	}
	if err := os.WriteFile(pth, []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write search path file").
			WithCause(err)
	}
	return nil
}

func (s Service) hasPip(ctx context.Context, layout runtimeLayout) bool {
	if _, err := os.Stat(layout.pythonExe); err != nil {
		return false
	}
	_, err := s.Runner.Run(ctx, layout.pythonExe, "-m", "pip", "--version")
	return err == nil
}

func (s Service) probeImport(ctx context.Context, layout runtimeLayout, module string) bool {
	_, err := s.Runner.Run(ctx, layout.pythonExe, "-c", fmt.Sprintf("import %s; print('ok')", module))
	return err == nil
}

// bootstrapPip downloads and runs get-pip.py, then attempts a
// best-effort self-upgrade. A bootstrap failure is fatal; an upgrade
// failure is not, since the short-circuit check governs final success.
func (s Service) bootstrapPip(ctx context.Context, layout runtimeLayout, sink types.ProgressSink) error {
	getPipPath := filepath.Join(layout.runtimeDir, "get-pip.py")

	sink.Emit(60, types.PhaseBootstrap, "Downloading get-pip.py...")
	if err := s.Downloader.Download(ctx, ports.DownloadSpec{
		URL:         types.GetPipURL,
		Dest:        getPipPath,
		Label:       "get-pip.py",
		PercentFrom: 60,
		PercentTo:   64,
	}, sink); err != nil {
		return err
	}
	defer os.Remove(getPipPath)

	sink.Emit(65, types.PhaseBootstrap, "Installing pip...")
	if output, err := s.Runner.Run(ctx, layout.pythonExe, getPipPath); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeAborted).
			WithMsg("get-pip.py failed: " + output).
			WithCause(err)
	}

	sink.Emit(75, types.PhaseBootstrap, "Upgrading pip...")
	_, _ = s.Runner.Run(ctx, layout.pythonExe, "-m", "pip", "install", "--upgrade", "pip")
	return nil
}

// tkinterDLLs are copied next to python.exe; entries missing from the
// extracted MSI are skipped.
var tkinterDLLs = []string{"_tkinter.pyd", "tcl86t.dll", "tk86t.dll", "zlib1.dll"}

// setupTkinter installs the Tk bindings into the runtime. The sub-step
// reports success through its return value but never fails the overall
// provisioning run.
func (s Service) setupTkinter(ctx context.Context, layout runtimeLayout, patch string, sink types.ProgressSink) bool {
	if s.probeImport(ctx, layout, "_tkinter") {
		sink.Emit(95, types.PhaseToolkit, "tkinter already available")
		return true
	}

	sink.Emit(82, types.PhaseToolkit, "Downloading tkinter components...")
	msiPath := filepath.Join(layout.baseDir, "_tcltk.msi")
	extractDir := filepath.Join(layout.baseDir, "_tcltk_extract")
	defer func() {
		_ = os.Remove(msiPath)
		_ = os.RemoveAll(extractDir)
	}()

	if err := s.Downloader.Download(ctx, ports.DownloadSpec{
		URL:         types.TclTkMSIURL(patch),
		Dest:        msiPath,
		Label:       "tkinter",
		PercentFrom: 83,
		PercentTo:   88,
	}, sink); err != nil {
		sink.Emit(0, types.PhaseError, "tkinter setup failed: "+err.Error())
		return false
	}

	sink.Emit(89, types.PhaseToolkit, "Extracting tkinter files...")
	if err := os.RemoveAll(extractDir); err != nil {
		sink.Emit(0, types.PhaseError, "tkinter setup failed: "+err.Error())
		return false
	}
	// Administrative extraction; msiexec's exit status is unreliable for
	// /a on some hosts, so success is judged by the re-probe below.
	_, _ = s.Runner.Run(ctx, "msiexec", "/a", msiPath, "/qn", "TARGETDIR="+extractDir)

	sink.Emit(92, types.PhaseToolkit, "Installing tkinter files...")
	dllsDir := filepath.Join(extractDir, "DLLs")
	for _, name := range tkinterDLLs {
		src := filepath.Join(dllsDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyFile(src, filepath.Join(layout.runtimeDir, name)); err != nil {
			sink.Emit(0, types.PhaseError, "tkinter setup failed: "+err.Error())
			return false
		}
	}

	replacements := []struct{ src, dst string }{
		{filepath.Join(extractDir, "Lib", "tkinter"), filepath.Join(layout.runtimeDir, "Lib", "tkinter")},
		{filepath.Join(extractDir, "tcl"), filepath.Join(layout.runtimeDir, "tcl")},
	}
	for _, r := range replacements {
		if _, err := os.Stat(r.src); err != nil {
			continue
		}
		// Replace wholesale so stale files from an older toolkit
		// version cannot linger.
		if err := os.RemoveAll(r.dst); err != nil {
			sink.Emit(0, types.PhaseError, "tkinter setup failed: "+err.Error())
			return false
		}
		if err := copyDir(r.src, r.dst); err != nil {
			sink.Emit(0, types.PhaseError, "tkinter setup failed: "+err.Error())
			return false
		}
	}

	if output, err := s.Runner.Run(ctx, layout.pythonExe, "-c", "import tkinter; print('ok')"); err != nil {
		sink.Emit(0, types.PhaseError, "tkinter verify failed: "+output)
		return false
	}
	sink.Emit(95, types.PhaseToolkit, "tkinter ready")
	return true
}

func copyFile(srcPath string, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open source file").
			WithCause(err)
	}
	defer src.Close()
	dest, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination file").
			WithCause(err)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, src); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy file").
			WithCause(err)
	}
	return nil
}

func copyDir(srcDir string, destDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read source directory").
			WithCause(err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination directory").
			WithCause(err)
	}
	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dest := filepath.Join(destDir, entry.Name())
		if entry.IsDir() {
			if err := copyDir(src, dest); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(src, dest); err != nil {
			return err
		}
	}
	return nil
}

package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"portable-deployer/internal/types"
)

// InstallRequirements runs the runtime's pip against a requirements
// file. The runtime must already be provisioned.
func (s Service) InstallRequirements(ctx context.Context, req InstallRequest) (InstallResult, error) {
	layout := newRuntimeLayout(req.BaseDir)
	sink := req.Sink

	if !layout.installed() {
		err := errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("embedded Python is not provisioned in " + layout.runtimeDir)
		sink.Emit(0, types.PhaseError, "Error: "+err.Error())
		return InstallResult{}, err
	}
	if _, err := os.Stat(req.RequirementsPath); err != nil {
		wrapped := errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("requirements file not found: " + req.RequirementsPath).
			WithCause(err)
		sink.Emit(0, types.PhaseError, "Error: "+wrapped.Error())
		return InstallResult{}, wrapped
	}

	sink.Emit(0, types.PhaseInstall, "Installing from "+filepath.Base(req.RequirementsPath)+"...")
	args := append([]string{"-m", "pip", "install", "-r", req.RequirementsPath}, req.ExtraPipArgs...)
	output, err := s.Runner.Run(ctx, layout.pythonExe, args...)
	if err != nil {
		sink.Emit(0, types.PhaseError, "Error: "+output)
		return InstallResult{Output: output}, err
	}
	sink.Emit(100, types.PhaseDone, "Requirements installed")
	return InstallResult{Output: output}, nil
}

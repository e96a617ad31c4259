package app

import "portable-deployer/internal/types"

type GenerateRequest struct {
	Config types.PackageConfig
	Sink   types.ProgressSink
}

type GenerateResult struct {
	OutputPath string
	Files      []string
}

type ProvisionRequest struct {
	// BaseDir is the bundle directory; the runtime itself lives in
	// BaseDir/python_embedded and scratch files are placed alongside.
	BaseDir       string
	PythonMinor   string
	ExtraPthPaths []string
	SetupTkinter  bool
	Sink          types.ProgressSink
}

type ProvisionResult struct {
	RuntimeDir         string
	AlreadyProvisioned bool
	TkinterReady       bool
}

type InstallRequest struct {
	BaseDir          string
	RequirementsPath string
	ExtraPipArgs     []string
	Sink             types.ProgressSink
}

type InstallResult struct {
	Output string
}

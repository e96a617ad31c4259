package adapters

import (
	"context"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"portable-deployer/internal/ports"
	"portable-deployer/internal/shared"
)

// ExecToolRunner runs external tools through os/exec with combined
// output capture. The provisioner swaps it for a scripted double in
// tests.
type ExecToolRunner struct{}

func NewExecToolRunner() ExecToolRunner {
	return ExecToolRunner{}
}

func (r ExecToolRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), errbuilder.New().
			WithCode(errbuilder.CodeAborted).
			WithMsg("command failed: " + name).
			WithCause(shared.CommandError(output, err))
	}
	return string(output), nil
}

var _ ports.ToolRunner = ExecToolRunner{}

package adapters

import (
	"context"
	"runtime"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecToolRunnerCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	output, err := NewExecToolRunner().Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", output)
}

func TestExecToolRunnerNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	output, err := NewExecToolRunner().Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAborted, errbuilder.CodeOf(err))
	assert.Contains(t, output, "boom")
}

func TestExecToolRunnerMissingBinary(t *testing.T) {
	_, err := NewExecToolRunner().Run(context.Background(), "definitely-not-a-real-tool-12345")
	require.Error(t, err)
}

package ports

import "context"

// ToolRunner executes an external tool and captures its combined
// output. A non-zero exit is returned as a non-nil error; callers that
// only probe for success ignore the output.
type ToolRunner interface {
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

package sugar

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single extraction invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the extraction command with the SuGaR checkout as working
// directory (train.py resolves its own relative paths). Stdout streams
// through so training progress stays visible; stderr is tee'd to the
// terminal and captured for retry classification.
func Execute(ctx context.Context, args []string, workDir string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout

	var stderrBuf bytes.Buffer
	cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// runLocalCommand executes line with /bin/sh in the current environment and
// working directory, streaming output to stdout and stderr. It blocks until
// the command exits and returns its exit code. The error is non-nil only when
// the shell could not be started or ctx ended the run.
func runLocalCommand(ctx context.Context, line string, stdout, stderr io.Writer) (int, error) {
	c := exec.CommandContext(ctx, "/bin/sh", "-c", line)
	c.Env = os.Environ()
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), nil
	}
	return -1, err
}

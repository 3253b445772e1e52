package cmd

import (
	"context"
	"errors"

	"golang.org/x/crypto/ssh"
)

// runRemoteCommand executes cmd on a fresh session from client and returns
// its output and exit code. When ctx ends first the call returns
// ctx.Err() and the session is left to finish in the background; callers
// should drop the connection in that case.
func runRemoteCommand(ctx context.Context, client sessionClient, cmd string) ([]byte, int, error) {
	type result struct {
		out      []byte
		exitCode int
		err      error
	}

	run := func() result {
		sess, err := client.NewSession()
		if err != nil {
			return result{nil, -1, err}
		}
		defer func() { _ = sess.Close() }()

		b, err := sess.CombinedOutput(cmd)
		if err == nil {
			if ec, ok := sess.(exitCoder); ok {
				return result{b, ec.LastExitCode(), nil}
			}
			return result{b, 0, nil}
		}
		exit := -1
		var ee *ssh.ExitError
		if errors.As(err, &ee) {
			exit = ee.ExitStatus()
		}
		return result{b, exit, err}
	}

	ch := make(chan result, 1)
	go func() { ch <- run() }()

	select {
	case r := <-ch:
		return r.out, r.exitCode, r.err
	case <-ctx.Done():
		return nil, -1, ctx.Err()
	}
}

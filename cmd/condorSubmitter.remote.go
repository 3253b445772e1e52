package cmd

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// remoteSubmitter writes job files and runs condor_submit on a submit node
// through one persistent shell, so the job directory entered by prepare is
// still the working directory when condor_submit runs.
type remoteSubmitter struct {
	dir     string
	client  sessionClient
	closers []func() error
}

func newRemoteSubmitter(client *ssh.Client, dir string) (condorSubmitter, error) {
	ps, err := newPersistentShell(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("start remote shell: %w", err)
	}
	return &remoteSubmitter{
		dir:     dir,
		client:  persistentSessionClient{ps: ps},
		closers: []func() error{ps.Close, client.Close},
	}, nil
}

// run executes line remotely and turns a non-zero exit into an error.
func (s *remoteSubmitter) run(ctx context.Context, line string) ([]byte, error) {
	logger.WithField("command", line).Debug("remote command")
	out, code, err := runRemoteCommand(ctx, s.client, line)
	if err != nil {
		return out, err
	}
	if code != 0 {
		return out, fmt.Errorf("exit code %d: %s", code, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// prepare reports the shell's starting directory as the submit directory,
// then creates the job directory and moves into it.
func (s *remoteSubmitter) prepare(ctx context.Context) (jobDirs, error) {
	dir := s.dir
	if dir == "" {
		dir = "."
	}
	out, err := s.run(ctx, fmt.Sprintf("pwd && mkdir -p %s && cd %s && pwd", shellQuote(dir), shellQuote(dir)))
	if err != nil {
		return jobDirs{}, err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return jobDirs{}, fmt.Errorf("remote shell did not report the job directory")
	}
	dirs := jobDirs{
		Submit: strings.TrimSpace(lines[0]),
		Work:   strings.TrimSpace(lines[len(lines)-1]),
	}
	if dirs.Submit == "" || dirs.Work == "" {
		return jobDirs{}, fmt.Errorf("remote shell did not report the job directory")
	}
	return dirs, nil
}

func (s *remoteSubmitter) writeFile(ctx context.Context, name, content string, executable bool) error {
	line := fmt.Sprintf("printf '%%s' %s > %s", shellQuote(content), shellQuote(name))
	if executable {
		line += " && chmod 755 " + shellQuote(name)
	}
	_, err := s.run(ctx, line)
	return err
}

func (s *remoteSubmitter) submit(ctx context.Context, submitFile string) ([]byte, error) {
	return s.run(ctx, "condor_submit "+shellQuote(submitFile))
}

// Close shuts the remote shell, then the connection.
func (s *remoteSubmitter) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// localSubmitter writes job files under dir and runs condor_submit on this
// machine. run is swappable so tests need no HTCondor installation.
type localSubmitter struct {
	dir     string
	workDir string
	run     func(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

func (s *localSubmitter) prepare(ctx context.Context) (jobDirs, error) {
	wd, err := os.Getwd()
	if err != nil {
		return jobDirs{}, err
	}
	abs, err := filepath.Abs(s.dir)
	if err != nil {
		return jobDirs{}, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return jobDirs{}, err
	}
	s.workDir = abs
	return jobDirs{Submit: wd, Work: abs}, nil
}

func (s *localSubmitter) writeFile(ctx context.Context, name, content string, executable bool) error {
	mode := os.FileMode(0o644)
	if executable {
		mode = 0o755
	}
	p := filepath.Join(s.workDir, name)
	if err := os.WriteFile(p, []byte(content), mode); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file; enforce it.
	return os.Chmod(p, mode)
}

func (s *localSubmitter) submit(ctx context.Context, submitFile string) ([]byte, error) {
	return s.run(ctx, s.workDir, "condor_submit", submitFile)
}

func (s *localSubmitter) Close() error { return nil }

// runCombined runs name in dir and returns combined stdout and stderr. A
// non-zero exit is an error carrying the trimmed output.
func runCombined(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = &out
	c.Stderr = &out
	if err := c.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return out.Bytes(), fmt.Errorf("exit code %d: %s", ee.ExitCode(), strings.TrimSpace(out.String()))
		}
		return out.Bytes(), err
	}
	return out.Bytes(), nil
}

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"
)

// persistentShell runs sequential commands on one long-lived /bin/sh on the
// submit node. The job directory chosen by one command stays the working
// directory of the next, so files land where condor_submit looks for them.
type persistentShell struct {
	sess   *ssh.Session
	stdin  io.WriteCloser
	pw     *io.PipeWriter
	reader *bufio.Reader
	mu     sync.Mutex

	nonce string
	seq   int
}

// newPersistentShell starts /bin/sh in script mode on a single session of
// client. stdout and stderr share one stream.
func newPersistentShell(client *ssh.Client) (*persistentShell, error) {
	s, err := client.NewSession()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	s.Stdout = pw
	s.Stderr = pw

	stdin, err := s.StdinPipe()
	if err != nil {
		_ = pw.Close()
		_ = s.Close()
		return nil, err
	}

	if err := s.Start("/bin/sh -s -"); err != nil {
		_ = stdin.Close()
		_ = pw.Close()
		_ = s.Close()
		return nil, err
	}

	return &persistentShell{
		sess:   s,
		stdin:  stdin,
		pw:     pw,
		reader: bufio.NewReader(pr),
		nonce:  strings.ReplaceAll(uuid.NewString(), "-", ""),
	}, nil
}

// Close asks the shell to exit and releases the session. Errors from the
// stream closures are ignored.
func (ps *persistentShell) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	_, _ = io.WriteString(ps.stdin, "exit\n")
	_ = ps.stdin.Close()
	_ = ps.pw.Close()
	return ps.sess.Close()
}

// runOne executes line and returns everything it printed and its exit code.
// A marker carrying $? is echoed after the command to find where the output
// ends.
func (ps *persistentShell) runOne(line string) ([]byte, int, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	id := ps.seq
	ps.seq++
	marker := fmt.Sprintf("__HARVEST_END__%s__%d__", ps.nonce, id)

	cmd := fmt.Sprintf("%s\necho %s $?\n", line, shellQuote(marker))
	if _, err := io.WriteString(ps.stdin, cmd); err != nil {
		return nil, -1, err
	}

	var out bytes.Buffer
	for {
		chunk, err := ps.reader.ReadString('\n')
		if idx := strings.Index(chunk, marker+" "); idx >= 0 {
			out.WriteString(chunk[:idx])
			rest := strings.TrimSpace(chunk[idx+len(marker)+1:])
			exit, perr := strconv.Atoi(rest)
			if perr != nil {
				exit = -1
			}
			return out.Bytes(), exit, nil
		}
		out.WriteString(chunk)
		if err != nil {
			return out.Bytes(), -1, err
		}
	}
}

// persistentSessionClient hands out virtual sessions that all run on ps.
type persistentSessionClient struct{ ps *persistentShell }

func (c persistentSessionClient) NewSession() (session, error) {
	return &persistentVirtualSession{ps: c.ps}, nil
}

// persistentVirtualSession maps CombinedOutput to runOne and keeps the exit
// code, which the shell reports in-band rather than as an error.
type persistentVirtualSession struct {
	ps       *persistentShell
	lastExit int
}

func (s *persistentVirtualSession) CombinedOutput(cmd string) ([]byte, error) {
	out, code, err := s.ps.runOne(cmd)
	s.lastExit = code
	return out, err
}

// Close is a no-op; the shell is owned by the session client.
func (s *persistentVirtualSession) Close() error { return nil }

func (s *persistentVirtualSession) LastExitCode() int { return s.lastExit }

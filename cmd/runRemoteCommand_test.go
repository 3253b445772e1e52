package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	out    []byte
	err    error
	delay  time.Duration
	closed bool
	cmds   []string
}

func (f *fakeSession) CombinedOutput(cmd string) ([]byte, error) {
	f.cmds = append(f.cmds, cmd)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.out, f.err
}
func (f *fakeSession) Close() error { f.closed = true; return nil }

type fakeClient struct {
	sess   *fakeSession
	newErr error
}

func (c *fakeClient) NewSession() (session, error) {
	if c.newErr != nil {
		return nil, c.newErr
	}
	return c.sess, nil
}

func TestRunRemoteCommand_Success(t *testing.T) {
	s := &fakeSession{out: []byte("OK\n")}
	out, code, err := runRemoteCommand(context.Background(), &fakeClient{sess: s}, "echo OK")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "OK\n", string(out))
	require.Equal(t, []string{"echo OK"}, s.cmds)
	require.True(t, s.closed)
}

func TestRunRemoteCommand_Timeout(t *testing.T) {
	s := &fakeSession{out: []byte("SLOW\n"), delay: 200 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	out, code, err := runRemoteCommand(ctx, &fakeClient{sess: s}, "sleep")
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.Equal(t, -1, code)
	require.Nil(t, out)
}

func TestRunRemoteCommand_NewSessionError(t *testing.T) {
	out, code, err := runRemoteCommand(context.Background(), &fakeClient{newErr: errors.New("no session")}, "cmd")
	require.Error(t, err)
	require.Equal(t, -1, code)
	require.Nil(t, out)
}

func TestRunRemoteCommand_CommandError_NoExitCode(t *testing.T) {
	s := &fakeSession{out: []byte("oops\n"), err: errors.New("boom")}
	out, code, err := runRemoteCommand(context.Background(), &fakeClient{sess: s}, "cmd")
	require.Error(t, err)
	require.Equal(t, -1, code)
	require.Equal(t, "oops\n", string(out))
}

type lastExitSession struct {
	out  []byte
	code int
}

func (s *lastExitSession) CombinedOutput(cmd string) ([]byte, error) { return s.out, nil }
func (s *lastExitSession) Close() error                              { return nil }
func (s *lastExitSession) LastExitCode() int                         { return s.code }

type lastExitClient struct{ sess *lastExitSession }

func (c *lastExitClient) NewSession() (session, error) { return c.sess, nil }

func TestRunRemoteCommand_PrefersLastExitCode(t *testing.T) {
	s := &lastExitSession{out: []byte("Z\n"), code: 42}
	out, code, err := runRemoteCommand(context.Background(), &lastExitClient{sess: s}, "cmd")
	require.NoError(t, err)
	require.Equal(t, 42, code)
	require.Equal(t, "Z\n", string(out))
}

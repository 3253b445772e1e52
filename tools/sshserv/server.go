// Package sshserv runs a throwaway SSH server that stands in for an HTCondor
// submit node in tests and local experiments.
package sshserv

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

// Options configures the commands the server runs.
type Options struct {
	// Dir is the working directory of every session. Empty means the
	// process's own working directory.
	Dir string
	// Env is appended to the process environment of every session, e.g. a
	// PATH that puts a fake condor_submit first.
	Env []string
}

// Server accepts any user without authentication and runs each exec request
// with /bin/sh -c, wiring the channel to the command's stdin, stdout and
// stderr. The exit status is reported back the way sshd does.
type Server struct {
	opts Options
	ln   net.Listener
	wg   sync.WaitGroup
	stop chan struct{}

	mu       sync.Mutex
	commands []string
}

// Start launches a server listening on listenAddr (e.g. 127.0.0.1:0).
func Start(listenAddr string, opts Options) (*Server, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	cfg := &ssh.ServerConfig{NoClientAuth: true}
	cfg.AddHostKey(signer)

	s := &Server{opts: opts, ln: ln, stop: make(chan struct{})}
	s.wg.Add(1)
	go s.serve(cfg)
	return s, nil
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Commands returns the exec requests received so far, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Close stops accepting connections and waits for the accept loop.
func (s *Server) Close() error {
	close(s.stop)
	err := s.ln.Close()
	s.wg.Wait()
	return err
}

func (s *Server) serve(cfg *ssh.ServerConfig) {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return
		}
		go s.handleConn(conn, cfg)
	}
}

func (s *Server) handleConn(raw net.Conn, cfg *ssh.ServerConfig) {
	_, chans, reqs, err := ssh.NewServerConn(raw, cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	go ssh.DiscardRequests(reqs)
	for ch := range chans {
		if ch.ChannelType() != "session" {
			_ = ch.Reject(ssh.UnknownChannelType, "")
			continue
		}
		c, in, err := ch.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(c, in)
	}
}

type execPayload struct{ Command string }

type exitStatus struct{ Status uint32 }

func (s *Server) handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	defer ch.Close()
	for req := range in {
		if req.Type != "exec" {
			if req.WantReply {
				_ = req.Reply(false, nil)
			}
			continue
		}
		var p execPayload
		if err := ssh.Unmarshal(req.Payload, &p); err != nil {
			_ = req.Reply(false, nil)
			continue
		}
		_ = req.Reply(true, nil)
		go ssh.DiscardRequests(in)
		s.mu.Lock()
		s.commands = append(s.commands, p.Command)
		s.mu.Unlock()

		code := s.run(ch, p.Command)
		_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(exitStatus{Status: uint32(code)}))
		return
	}
}

func (s *Server) run(ch ssh.Channel, command string) int {
	c := exec.Command("/bin/sh", "-c", command)
	c.Dir = s.opts.Dir
	c.Env = append(os.Environ(), s.opts.Env...)
	c.Stdin = ch
	c.Stdout = ch
	c.Stderr = ch.Stderr()
	if err := c.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return ee.ExitCode()
		}
		return 127
	}
	return 0
}

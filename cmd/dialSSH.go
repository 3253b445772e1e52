package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// sshOptions holds everything needed to reach the submit node.
type sshOptions struct {
	target         string
	user           string
	password       string
	keyPath        string
	passphrase     string
	knownHostsPath string
	strictHost     bool
	dialTimeout    time.Duration
}

// dialAttempts bounds how often the submit node is dialed before giving up.
const dialAttempts = 3

func currentSSHOptions() sshOptions {
	target := strings.TrimSpace(cfgScheddHost)
	if target != "" && !strings.Contains(target, ":") {
		target += ":22"
	}
	user := strings.TrimSpace(cfgUser)
	if user == "" {
		user = os.Getenv("USER")
	}
	return sshOptions{
		target:         target,
		user:           user,
		password:       cfgPassword,
		keyPath:        cfgKeyPath,
		passphrase:     cfgPassphrase,
		knownHostsPath: cfgKnownHosts,
		strictHost:     cfgStrictHost,
		dialTimeout:    cfgConnTimeout,
	}
}

// dialWithRetry dials the submit node with exponential backoff. Host key and
// key-file problems are not retried.
func dialWithRetry(ctx context.Context, opts sshOptions) (*ssh.Client, error) {
	var client *ssh.Client
	attempt := 0
	op := func() error {
		attempt++
		c, err := dialSSHFunc(opts)
		if err != nil {
			if isPermanentDialError(err) {
				return backoff.Permanent(err)
			}
			logger.WithFields(map[string]interface{}{
				"target":  opts.target,
				"attempt": attempt,
			}).WithError(err).Warn("ssh dial failed")
			return err
		}
		client = c
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, dialAttempts-1), ctx)); err != nil {
		return nil, err
	}
	return client, nil
}

// dialSSH establishes an SSH client connection with options
func dialSSH(opts sshOptions) (*ssh.Client, error) {
	var auths []ssh.AuthMethod

	if opts.keyPath != "" {
		signer, err := loadSigner(opts.keyPath, opts.passphrase)
		if err != nil {
			return nil, &permanentDialError{fmt.Errorf("load key: %w", err)}
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	if opts.password != "" {
		auths = append(auths, ssh.Password(opts.password))
	}

	// Try SSH agent if available
	if a := os.Getenv("SSH_AUTH_SOCK"); a != "" {
		if conn, err := net.Dial("unix", a); err == nil {
			ag := agent.NewClient(conn)
			auths = append(auths, ssh.PublicKeysCallback(ag.Signers))
		}
	}

	var hostKeyCB ssh.HostKeyCallback
	if opts.strictHost {
		// Known hosts are required; fail closed otherwise
		if _, err := os.Stat(opts.knownHostsPath); err != nil {
			return nil, &permanentDialError{fmt.Errorf("known_hosts file not found at %s and strict-host-key is enabled", opts.knownHostsPath)}
		}
		cb, err := knownhosts.New(opts.knownHostsPath)
		if err != nil {
			return nil, &permanentDialError{fmt.Errorf("known_hosts: %w", err)}
		}
		hostKeyCB = cb
	} else {
		hostKeyCB = ssh.InsecureIgnoreHostKey()
	}

	cfg := &ssh.ClientConfig{
		User:            opts.user,
		Auth:            auths,
		HostKeyCallback: hostKeyCB,
		Timeout:         opts.dialTimeout,
	}

	d := net.Dialer{Timeout: opts.dialTimeout}
	conn, err := d.Dial("tcp", opts.target)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, opts.target, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// permanentDialError marks configuration problems that another attempt
// cannot fix.
type permanentDialError struct{ err error }

func (e *permanentDialError) Error() string { return e.err.Error() }
func (e *permanentDialError) Unwrap() error { return e.err }

func isPermanentDialError(err error) bool {
	var pe *permanentDialError
	return errors.As(err, &pe)
}

package cmd

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestDialSSH_StrictHostKeyMissingKnownHosts(t *testing.T) {
	_, err := dialSSH(sshOptions{
		target:         "127.0.0.1:22",
		user:           "u",
		knownHostsPath: filepath.Join(t.TempDir(), "nope"),
		strictHost:     true,
		dialTimeout:    100 * time.Millisecond,
	})
	require.Error(t, err)
	require.True(t, isPermanentDialError(err))
}

func TestDialSSH_StrictHostKeyWithKnownHosts(t *testing.T) {
	kh := writeTemp(t, t.TempDir(), "known_hosts", "\n")
	_, err := dialSSH(sshOptions{target: "127.0.0.1:1", user: "u", knownHostsPath: kh, strictHost: true, dialTimeout: 50 * time.Millisecond})
	require.Error(t, err)
	require.False(t, isPermanentDialError(err))
}

func TestDialSSH_AuthMethodsAssembly(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", filepath.Join(t.TempDir(), "no.sock"))
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	keyPath := writeTemp(t, t.TempDir(), "id_rsa", string(pemBytes))
	_, err = dialSSH(sshOptions{target: "127.0.0.1:1", user: "u", password: "p", keyPath: keyPath, dialTimeout: 50 * time.Millisecond})
	require.Error(t, err)
}

func TestDialSSH_BadKeyIsPermanent(t *testing.T) {
	keyPath := writeTemp(t, t.TempDir(), "id_rsa", "not a key")
	_, err := dialSSH(sshOptions{target: "127.0.0.1:1", user: "u", keyPath: keyPath})
	require.Error(t, err)
	require.True(t, isPermanentDialError(err))
	require.Contains(t, err.Error(), "load key")
}

func TestCurrentSSHOptions_DefaultsPort(t *testing.T) {
	resetConfig()
	cfgScheddHost = "lxplus.cern.ch"
	cfgUser = "cmsdqm"
	require.Equal(t, "lxplus.cern.ch:22", currentSSHOptions().target)
	cfgScheddHost = "lxplus.cern.ch:2222"
	opts := currentSSHOptions()
	require.Equal(t, "lxplus.cern.ch:2222", opts.target)
	require.Equal(t, "cmsdqm", opts.user)
}

func TestDialWithRetry_RetriesTransientErrors(t *testing.T) {
	orig := dialSSHFunc
	t.Cleanup(func() { dialSSHFunc = orig })
	calls := 0
	dialSSHFunc = func(opts sshOptions) (*ssh.Client, error) {
		calls++
		return nil, errors.New("connection refused")
	}
	_, err := dialWithRetry(context.Background(), sshOptions{target: "h:22"})
	require.Error(t, err)
	require.Equal(t, dialAttempts, calls)
}

func TestDialWithRetry_StopsOnPermanentError(t *testing.T) {
	orig := dialSSHFunc
	t.Cleanup(func() { dialSSHFunc = orig })
	calls := 0
	dialSSHFunc = func(opts sshOptions) (*ssh.Client, error) {
		calls++
		return nil, &permanentDialError{errors.New("known_hosts missing")}
	}
	_, err := dialWithRetry(context.Background(), sshOptions{target: "h:22"})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestDialWithRetry_Success(t *testing.T) {
	orig := dialSSHFunc
	t.Cleanup(func() { dialSSHFunc = orig })
	calls := 0
	want := &ssh.Client{}
	dialSSHFunc = func(opts sshOptions) (*ssh.Client, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("reset")
		}
		return want, nil
	}
	got, err := dialWithRetry(context.Background(), sshOptions{target: "h:22"})
	require.NoError(t, err)
	require.Same(t, want, got)
	require.Equal(t, 2, calls)
}

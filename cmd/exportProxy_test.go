package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportProxy_SetsEnvironment(t *testing.T) {
	p := writeProxy(t, t.TempDir())
	got, err := exportProxy(p)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.Equal(t, p, os.Getenv(proxyEnvVar))
}

func TestExportProxy_RelativePathBecomesAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeProxy(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := exportProxy("x509up_u1000")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
	require.Equal(t, "x509up_u1000", filepath.Base(got))
}

func TestExportProxy_FallsBackToEnvironment(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "proxy", "x")
	t.Setenv(proxyEnvVar, p)
	got, err := exportProxy("")
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestExportProxy_Errors(t *testing.T) {
	t.Setenv(proxyEnvVar, "")
	_, err := exportProxy("")
	require.ErrorContains(t, err, "grid proxy is required")

	missing := filepath.Join(t.TempDir(), "x509up_missing")
	_, err = exportProxy(missing)
	require.ErrorContains(t, err, "does not exist")

	_, err = exportProxy(t.TempDir())
	require.ErrorContains(t, err, "is a directory")
}

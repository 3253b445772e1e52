package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const proxyEnvVar = "X509_USER_PROXY"

// exportProxy makes the grid proxy visible to every child process (DAS
// client, harvester, condor_submit) by exporting X509_USER_PROXY. An empty
// path falls back to the proxy already exported in the environment. It
// returns the absolute proxy path.
func exportProxy(proxy string) (string, error) {
	p := strings.TrimSpace(proxy)
	if p == "" {
		p = strings.TrimSpace(os.Getenv(proxyEnvVar))
	}
	if p == "" {
		return "", fmt.Errorf("a grid proxy is required; pass --proxy or set %s", proxyEnvVar)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve proxy path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("proxy %s does not exist", abs)
		}
		return "", fmt.Errorf("stat proxy: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("proxy %s is a directory", abs)
	}
	if err := os.Setenv(proxyEnvVar, abs); err != nil {
		return "", fmt.Errorf("export %s: %w", proxyEnvVar, err)
	}
	return abs, nil
}

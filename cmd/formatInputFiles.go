package cmd

import (
	"context"
	"fmt"
	"strings"
)

// formatInputFiles resolves the dataset identifier into an ordered, non-empty
// list of file locators:
//   - an identifier containing a comma is an explicit file list
//   - filemode das queries the catalog and prefixes the redirector
//   - filemode local lists the files in the named folder
//
// Test mode keeps a single file. An empty result is errNoInputFiles.
func formatInputFiles(ctx context.Context, cfg jobConfig) ([]string, error) {
	var (
		files []string
		err   error
	)
	switch {
	case strings.Contains(cfg.DatasetName, ","):
		files = splitFileList(cfg.DatasetName)
		if cfg.FileMode == fileModeDAS {
			files = withRedirector(cfg.Redirector, files)
		}
	case cfg.FileMode == fileModeDAS:
		qctx := ctx
		if cfg.DASTimeout > 0 {
			var cancel context.CancelFunc
			qctx, cancel = context.WithTimeout(ctx, cfg.DASTimeout)
			defer cancel()
		}
		files, err = queryCatalogFunc(qctx, cfg.DASClient, cfg.DatasetName)
		if err != nil {
			return nil, fmt.Errorf("das query for %q failed: %w", cfg.DatasetName, err)
		}
		files = withRedirector(cfg.Redirector, files)
	case cfg.FileMode == fileModeLocal:
		files, err = listLocalFiles(cfg.DatasetName)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", cfg.DatasetName, err)
		}
	default:
		return nil, fmt.Errorf("unsupported filemode %q", cfg.FileMode)
	}

	if cfg.IsTest {
		files = selectTestFile(files, cfg.TestMatch)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w for dataset %q", errNoInputFiles, cfg.DatasetName)
	}
	return files, nil
}

// splitFileList splits an explicit comma-separated list, dropping blanks so
// that a trailing comma ("a.root,") yields a single file.
func splitFileList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// normalizeRedirector returns the redirector with exactly one trailing slash.
func normalizeRedirector(r string) string {
	return strings.TrimRight(strings.TrimSpace(r), "/") + "/"
}

// withRedirector prefixes every file that is not already a URL.
func withRedirector(redirector string, files []string) []string {
	prefix := normalizeRedirector(redirector)
	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.Contains(f, "://") {
			out = append(out, f)
			continue
		}
		out = append(out, prefix+f)
	}
	return out
}

// selectTestFile keeps the first file containing match, or the first file
// when match is empty. No match yields an empty list.
func selectTestFile(files []string, match string) []string {
	for _, f := range files {
		if match == "" || strings.Contains(f, match) {
			return []string{f}
		}
	}
	return nil
}

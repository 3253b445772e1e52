package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// queryCatalog asks DAS for the files of a dataset by running
// `<client> -query "file dataset=<name>"`. Output lines are trimmed and blank
// lines dropped; order is preserved.
func queryCatalog(ctx context.Context, client, dataset string) ([]string, error) {
	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, client, "-query", "file dataset="+dataset)
	c.Stdout = &stdout
	c.Stderr = &stderr

	logger.WithField("query", "file dataset="+dataset).Debug("querying DAS")
	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("%s exited with code %d: %s", client, ee.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return parseCatalogOutput(stdout.Bytes()), nil
}

func parseCatalogOutput(b []byte) []string {
	var files []string
	s := bufio.NewScanner(bytes.NewReader(b))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			files = append(files, line)
		}
	}
	return files
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writePlan records what a run would dispatch without dispatching it.
func writePlan(path string, cfg jobConfig, line string, job *condorJob) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	writePlanHeader(f, cfg)
	if err := writePlanSection(f, "Command", line); err != nil {
		return err
	}
	if job != nil {
		if err := writePlanSection(f, "File: "+job.scriptName(), job.script()); err != nil {
			return err
		}
		if err := writePlanSection(f, "File: "+job.submitName(), job.submitDescription()); err != nil {
			return err
		}
	}
	return f.Close()
}

// plannedJob resolves a job home of "auto" the way a local submission would.
// The home of a remote submission is only known once connected, so the
// planned script keeps the login directory of the submit node.
func plannedJob(job condorJob) (condorJob, error) {
	if job.Home != homeAuto {
		return job, nil
	}
	if cfgScheddHost != "" {
		job.Home = ""
		return job, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return job, fmt.Errorf("resolve job home: %w", err)
	}
	job.Home = wd
	return job, nil
}

func writePlanHeader(w io.Writer, cfg jobConfig) {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "Run Mode: %s\n", cfg.RunMode)
	_, _ = fmt.Fprintf(bw, "File Mode: %s\n", cfg.FileMode)
	_, _ = fmt.Fprintf(bw, "Dataset: %s\n", cfg.DatasetName)
	if cfg.RunMode == runModeCondor && cfgScheddHost != "" {
		_, _ = fmt.Fprintf(bw, "Schedd Host: %s\n", cfgScheddHost)
	}
	_, _ = fmt.Fprintf(bw, "Generated: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintln(bw, strings.Repeat("=", 80))
	_ = bw.Flush()
}

// writePlanSection writes one titled block of the plan.
func writePlanSection(w io.Writer, title, body string) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, strings.Repeat("-", 80))
	_, _ = fmt.Fprintf(bw, "%s\n", title)
	_, _ = fmt.Fprintln(bw, "---8<---")
	_, _ = bw.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		_, _ = bw.WriteString("\n")
	}
	_, _ = fmt.Fprintln(bw, "---8<---")
	return bw.Flush()
}

package cmd

import (
	"context"
	"fmt"
	"strings"
)

// condorSubmitter is where condor job files are written and condor_submit
// is run: the local machine, or a remote submit node over SSH.
type condorSubmitter interface {
	// prepare creates the job directory and reports it together with the
	// directory the submission was made from.
	prepare(ctx context.Context) (jobDirs, error)
	writeFile(ctx context.Context, name, content string, executable bool) error
	// submit runs condor_submit on the named submit description from inside
	// the job directory and returns its combined output.
	submit(ctx context.Context, submitFile string) ([]byte, error)
	Close() error
}

// jobDirs holds absolute paths on the machine that runs condor_submit.
// Submit is where the user submitted from; Work holds the job files.
type jobDirs struct {
	Submit string
	Work   string
}

// condorSubmission is what a successful condor_submit leaves behind.
type condorSubmission struct {
	Job       condorJob
	WorkDir   string
	ClusterID string
	Output    []byte
}

// newSubmitter picks the local submitter unless a schedd host is configured.
func newSubmitter(ctx context.Context, cfg jobConfig) (condorSubmitter, error) {
	if cfgScheddHost == "" {
		return &localSubmitter{dir: cfg.JobDir, run: runCombined}, nil
	}
	if cfg.FileMode == fileModeLocal && !strings.Contains(cfg.DatasetName, ",") {
		logger.WithField("folder", cfg.DatasetName).Warn("input folder was listed on this machine; the submit node must see it at the same path")
	}
	opts := currentSSHOptions()
	client, err := dialWithRetry(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ssh connection to %s failed: %w", opts.target, err)
	}
	dir := cfgRemoteDir
	if dir == "" {
		dir = cfg.JobDir
	}
	return newRemoteSubmitter(client, dir)
}

// submitCondorJob writes the job script and submit description through sub
// and queues the job. A job home of "auto" becomes the submit directory, so
// relative paths in the command resolve as they did at submission.
func submitCondorJob(ctx context.Context, sub condorSubmitter, job condorJob) (*condorSubmission, error) {
	dirs, err := sub.prepare(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare job directory: %w", err)
	}
	workDir := dirs.Work
	if job.Home == homeAuto {
		job.Home = dirs.Submit
	}
	if err := sub.writeFile(ctx, job.scriptName(), job.script(), true); err != nil {
		return nil, fmt.Errorf("write %s: %w", job.scriptName(), err)
	}
	if err := sub.writeFile(ctx, job.submitName(), job.submitDescription(), false); err != nil {
		return nil, fmt.Errorf("write %s: %w", job.submitName(), err)
	}
	out, err := sub.submit(ctx, job.submitName())
	if err != nil {
		return nil, fmt.Errorf("condor_submit %s: %w", job.submitName(), err)
	}
	return &condorSubmission{
		Job:       job,
		WorkDir:   workDir,
		ClusterID: parseClusterID(out),
		Output:    out,
	}, nil
}

package cmd

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// submissionRecord is the YAML document --record writes after dispatch.
// ClusterID is set for condor runs, ExitCode for local runs.
type submissionRecord struct {
	JobName    string   `yaml:"job_name,omitempty"`
	Generated  string   `yaml:"generated"`
	RunMode    string   `yaml:"runmode"`
	FileMode   string   `yaml:"filemode"`
	Dataset    string   `yaml:"dataset"`
	MEName     string   `yaml:"mename"`
	OutputFile string   `yaml:"outputfile"`
	InputFiles []string `yaml:"input_files"`
	Command    string   `yaml:"command"`
	ScheddHost string   `yaml:"schedd_host,omitempty"`
	WorkDir    string   `yaml:"workdir,omitempty"`
	ClusterID  string   `yaml:"cluster_id,omitempty"`
	ExitCode   *int     `yaml:"exit_code,omitempty"`
}

func newSubmissionRecord(cfg jobConfig, files []string, line string) *submissionRecord {
	rec := &submissionRecord{
		Generated:  time.Now().Format(time.RFC3339),
		RunMode:    cfg.RunMode,
		FileMode:   cfg.FileMode,
		Dataset:    cfg.DatasetName,
		MEName:     cfg.MEName,
		OutputFile: cfg.OutputFile,
		InputFiles: files,
		Command:    line,
	}
	if cfg.RunMode == runModeCondor {
		rec.ScheddHost = cfgScheddHost
	}
	return rec
}

// encodeSubmissionRecord serializes r with two-space indentation.
func encodeSubmissionRecord(w io.Writer, r *submissionRecord) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}

func writeSubmissionRecord(path string, r *submissionRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeSubmissionRecord(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

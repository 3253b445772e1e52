package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// jobConfig is the resolved view of one submission. It is built once from the
// global settings after flags, environment and job file have been merged, and
// then passed by value through the resolver and dispatcher.
type jobConfig struct {
	Harvester   string
	RunMode     string
	FileMode    string
	DatasetName string
	Redirector  string
	MEName      string
	OutputFile  string
	Proxy       string
	CMSSW       string
	JobFlavour  string
	IsTest      bool
	TestMatch   string

	Python     string
	DASClient  string
	DASTimeout time.Duration
	JobName    string
	JobDir     string
}

// currentJobConfig snapshots the global settings into a jobConfig. Proxy and
// CMSSW paths are made absolute, as the job may run from another directory.
func currentJobConfig() (jobConfig, error) {
	cfg := jobConfig{
		Harvester:   strings.TrimSpace(cfgHarvester),
		RunMode:     strings.TrimSpace(cfgRunMode),
		FileMode:    strings.TrimSpace(cfgFileMode),
		DatasetName: strings.TrimSpace(cfgDatasetName),
		Redirector:  strings.TrimSpace(cfgRedirector),
		MEName:      strings.TrimSpace(cfgMEName),
		OutputFile:  strings.TrimSpace(cfgOutputFile),
		JobFlavour:  strings.TrimSpace(cfgJobFlavour),
		IsTest:      cfgIsTest,
		TestMatch:   cfgTestMatch,
		Python:      strings.TrimSpace(cfgPython),
		DASClient:   strings.TrimSpace(cfgDASClient),
		DASTimeout:  cfgDASTimeout,
		JobName:     strings.TrimSpace(cfgJobName),
		JobDir:      strings.TrimSpace(cfgJobDir),
	}
	if p := strings.TrimSpace(cfgProxy); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return cfg, fmt.Errorf("resolve proxy path: %w", err)
		}
		cfg.Proxy = abs
	}
	if p := strings.TrimSpace(cfgCMSSW); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return cfg, fmt.Errorf("resolve cmssw path: %w", err)
		}
		cfg.CMSSW = abs
	}
	if cfg.Python == "" {
		cfg.Python = "python"
	}
	if cfg.DASClient == "" {
		cfg.DASClient = "dasgoclient"
	}
	if cfg.JobName == "" {
		cfg.JobName = defaultJobName
	}
	if cfg.JobDir == "" {
		cfg.JobDir = "."
	}
	return cfg, nil
}

// validateInputs checks the settings needed to resolve input files.
func (c jobConfig) validateInputs() error {
	if c.DatasetName == "" {
		return errors.New("--datasetname is required (DAS dataset, local folder or comma-separated file list)")
	}
	switch c.FileMode {
	case fileModeDAS, fileModeLocal:
	default:
		return fmt.Errorf("invalid --filemode %q (choose from %q, %q)", c.FileMode, fileModeDAS, fileModeLocal)
	}
	if c.FileMode == fileModeDAS && c.Redirector == "" {
		return errors.New("--redirector is required for filemode das")
	}
	return nil
}

// validate checks everything a submission needs before any external call.
func (c jobConfig) validate() error {
	if c.Harvester == "" {
		return errors.New("--harvester is required (path to harvester script)")
	}
	switch c.RunMode {
	case runModeCondor, runModeLocal:
	default:
		return fmt.Errorf("invalid --runmode %q (choose from %q, %q)", c.RunMode, runModeCondor, runModeLocal)
	}
	if err := c.validateInputs(); err != nil {
		return err
	}
	if c.MEName == "" {
		return errors.New("--mename is required (monitoring element name)")
	}
	if c.Redirector == "" {
		return errors.New("--redirector must not be empty")
	}
	if c.OutputFile == "" {
		return errors.New("--outputfile must not be empty")
	}
	return nil
}

// needsProxy reports whether a grid proxy must be exported before resolving
// inputs: DAS queries and condor jobs both authenticate with it.
func (c jobConfig) needsProxy() bool {
	return c.FileMode == fileModeDAS || c.RunMode == runModeCondor
}

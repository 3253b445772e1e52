package cmd

import (
	"errors"
	"time"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

// errNoInputFiles is returned when the input resolver ends up with an empty
// file list. It is the only condition the submitter itself treats as fatal.
var errNoInputFiles = errors.New("no input files resolved")

const (
	runModeCondor = "condor"
	runModeLocal  = "local"

	fileModeDAS   = "das"
	fileModeLocal = "local"

	defaultRedirector = "root://cms-xrd-global.cern.ch/"
	defaultJobName    = "cjob_harvest_nanodqmio_submit"
	envPrefix         = "HARVEST_SUBMIT"
)

var (
	// Global configuration populated by flags, environment variables and the
	// optional job file. Declared here so every subcommand sees the same view.
	cfgConfigPath string
	cfgEnvFile    string

	cfgHarvester   string
	cfgRunMode     string
	cfgFileMode    string
	cfgDatasetName string
	cfgRedirector  string
	cfgMEName      string
	cfgOutputFile  string
	cfgProxy       string
	cfgCMSSW       string
	cfgJobFlavour  string
	cfgIsTest      bool
	cfgTestMatch   string

	cfgPython     string
	cfgDASClient  string
	cfgDASTimeout time.Duration
	cfgJobName    string
	cfgJobDir     string
	cfgRecordPath string
	cfgNoop       bool

	cfgLogLevel  string
	cfgLogFormat string

	// Remote schedd host (optional). When empty, condor_submit runs locally.
	cfgScheddHost  string
	cfgUser        string
	cfgPassword    string
	cfgKeyPath     string
	cfgPassphrase  string
	cfgKnownHosts  string
	cfgStrictHost  bool
	cfgConnTimeout time.Duration
	cfgRemoteDir   string
)

// noopPlanPath is where --noop writes the planned command and job files.
var noopPlanPath = "debug.out"

// Allow tests to stub external processes and the network.
var (
	queryCatalogFunc = queryCatalog
	runLocalFunc     = runLocalCommand
	newSubmitterFunc = newSubmitter
	dialSSHFunc      = dialSSH
)

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// init configures the root command's persistent flags, binds them to
// HARVEST_SUBMIT_* environment variables via Viper, and registers all
// subcommands. Flags are persistent so `files` and `verify` resolve settings
// exactly like a submission does.
func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVarP(&cfgConfigPath, "config", "c", "", "Path to YAML job file (keys match flag names)")
	pf.StringVar(&cfgEnvFile, "env-file", "", "Load environment variables from this .env file first")

	// Job settings
	pf.StringVar(&cfgHarvester, "harvester", "", "Harvester to run, a python script taking the same options as harvest_nanodqmio_to_csv.py")
	pf.StringVar(&cfgRunMode, "runmode", runModeCondor, `Run mode: "condor" submits a cluster job, "local" runs in this terminal`)
	pf.StringVar(&cfgFileMode, "filemode", fileModeDAS, `File mode: "das" reads dataset files from DAS, "local" reads files in a local folder`)
	pf.StringVar(&cfgDatasetName, "datasetname", "", "DAS dataset, local folder, or comma-separated list of files (a comma makes it a list)")
	pf.StringVar(&cfgRedirector, "redirector", defaultRedirector, "Redirector used to access remote files")
	pf.StringVar(&cfgMEName, "mename", "", "Name of the monitoring element to store")
	pf.StringVar(&cfgOutputFile, "outputfile", "test.csv", "Path to output CSV file")
	pf.StringVar(&cfgProxy, "proxy", "", "Grid proxy created with voms-proxy-init (or set X509_USER_PROXY)")
	pf.StringVar(&cfgCMSSW, "cmssw", "", "CMSSW release directory, needed for xrootd reading in condor jobs")
	pf.StringVar(&cfgJobFlavour, "jobflavour", "workday", "Condor job flavour (espresso, microcentury, longlunch, workday, tomorrow, testmatch, nextweek)")
	pf.BoolVar(&cfgIsTest, "istest", false, "Read only one input file")
	pf.StringVar(&cfgTestMatch, "testmatch", "", "With --istest, pick the first file containing this substring")

	// Tooling
	pf.StringVar(&cfgPython, "python", "python", "Python interpreter used to run the harvester")
	pf.StringVar(&cfgDASClient, "dasclient", "dasgoclient", "DAS client executable")
	pf.DurationVar(&cfgDASTimeout, "das-timeout", 0, "Timeout for the DAS query (e.g., 2m). 0 disables")
	pf.StringVar(&cfgJobName, "jobname", defaultJobName, "Base name of the condor job files")
	pf.StringVar(&cfgJobDir, "jobdir", ".", "Directory where condor job files are written")
	pf.StringVar(&cfgRecordPath, "record", "", "Write a YAML submission record to this path")
	pf.BoolVar(&cfgNoop, "noop", false, "Do not dispatch; write the planned command and job files to debug.out")
	pf.StringVar(&cfgLogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&cfgLogFormat, "log-format", "text", "Log format (text, json)")

	// Remote schedd host
	pf.StringVar(&cfgScheddHost, "schedd-host", "", "Submit node FQDN/IP[:port]; condor_submit runs there over SSH when set. "+
		"The proxy, --cmssw and local input folders are resolved on this machine, so the submit node must see them at the same paths (e.g. AFS)")
	pf.StringVarP(&cfgUser, "user", "u", "", "SSH username for the submit node")
	pf.StringVar(&cfgPassword, "password", "", "SSH password (or set HARVEST_SUBMIT_PASSWORD)")
	pf.StringVar(&cfgKeyPath, "key", "", "Path to SSH private key (PEM, OpenSSH)")
	pf.StringVar(&cfgPassphrase, "passphrase", "", "Private key passphrase (or set HARVEST_SUBMIT_PASSPHRASE)")
	pf.StringVar(&cfgKnownHosts, "known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file")
	pf.BoolVar(&cfgStrictHost, "strict-host-key", true, "Require host key verification (disable to accept any host key)")
	pf.DurationVar(&cfgConnTimeout, "conn-timeout", 15*time.Second, "SSH connection timeout")
	pf.StringVar(&cfgRemoteDir, "remote-dir", "", "Job directory on the submit node (defaults to --jobdir)")

	// Bind env with Viper
	for _, s := range settings() {
		_ = viper.BindPFlag(s.key, pf.Lookup(s.key))
	}
	bindEnv()

	// Add subcommands
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(verifyCmd)
}

var envKeyReplacer = strings.NewReplacer("-", "_")

// bindEnv sets up the HARVEST_SUBMIT_ prefix; dashes in keys become
// underscores (e.g. HARVEST_SUBMIT_SCHEDD_HOST).
func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setting ties a flag key to the global it fills and, optionally, to the job
// file field that provides a fallback value.
type setting struct {
	key      string
	str      *string
	boolean  *bool
	duration *time.Duration
	fromFile func(*jobFile) string
}

func settings() []setting {
	return []setting{
		{key: "harvester", str: &cfgHarvester, fromFile: func(j *jobFile) string { return j.Harvester }},
		{key: "runmode", str: &cfgRunMode, fromFile: func(j *jobFile) string { return j.RunMode }},
		{key: "filemode", str: &cfgFileMode, fromFile: func(j *jobFile) string { return j.FileMode }},
		{key: "datasetname", str: &cfgDatasetName, fromFile: func(j *jobFile) string { return j.DatasetName }},
		{key: "redirector", str: &cfgRedirector, fromFile: func(j *jobFile) string { return j.Redirector }},
		{key: "mename", str: &cfgMEName, fromFile: func(j *jobFile) string { return j.MEName }},
		{key: "outputfile", str: &cfgOutputFile, fromFile: func(j *jobFile) string { return j.OutputFile }},
		{key: "proxy", str: &cfgProxy, fromFile: func(j *jobFile) string { return j.Proxy }},
		{key: "cmssw", str: &cfgCMSSW, fromFile: func(j *jobFile) string { return j.CMSSW }},
		{key: "jobflavour", str: &cfgJobFlavour, fromFile: func(j *jobFile) string { return j.JobFlavour }},
		{key: "istest", boolean: &cfgIsTest, fromFile: func(j *jobFile) string {
			if j.IsTest == nil {
				return ""
			}
			return strconv.FormatBool(*j.IsTest)
		}},
		{key: "testmatch", str: &cfgTestMatch, fromFile: func(j *jobFile) string { return j.TestMatch }},
		{key: "python", str: &cfgPython, fromFile: func(j *jobFile) string { return j.Python }},
		{key: "dasclient", str: &cfgDASClient, fromFile: func(j *jobFile) string { return j.DASClient }},
		{key: "das-timeout", duration: &cfgDASTimeout},
		{key: "jobname", str: &cfgJobName, fromFile: func(j *jobFile) string { return j.JobName }},
		{key: "jobdir", str: &cfgJobDir, fromFile: func(j *jobFile) string { return j.JobDir }},
		{key: "record", str: &cfgRecordPath},
		{key: "noop", boolean: &cfgNoop},
		{key: "log-level", str: &cfgLogLevel},
		{key: "log-format", str: &cfgLogFormat},
		{key: "schedd-host", str: &cfgScheddHost, fromFile: func(j *jobFile) string { return j.Schedd.Host }},
		{key: "user", str: &cfgUser, fromFile: func(j *jobFile) string { return j.Schedd.User }},
		{key: "password", str: &cfgPassword},
		{key: "key", str: &cfgKeyPath},
		{key: "passphrase", str: &cfgPassphrase},
		{key: "known-hosts", str: &cfgKnownHosts},
		{key: "strict-host-key", boolean: &cfgStrictHost},
		{key: "conn-timeout", duration: &cfgConnTimeout},
		{key: "remote-dir", str: &cfgRemoteDir, fromFile: func(j *jobFile) string { return j.Schedd.Dir }},
	}
}

// applySettings merges environment variables and the job file into the
// globals. Precedence: explicit flag > HARVEST_SUBMIT_* env > job file > flag
// default.
func applySettings(cmd *cobra.Command, jf *jobFile) error {
	for _, s := range settings() {
		if flagChanged(cmd, s.key) {
			continue
		}
		if viper.IsSet(s.key) {
			if err := s.set(viper.GetString(s.key)); err != nil {
				return fmt.Errorf("environment %s: %w", envName(s.key), err)
			}
			continue
		}
		if jf == nil || s.fromFile == nil {
			continue
		}
		if v := s.fromFile(jf); v != "" {
			if err := s.set(v); err != nil {
				return fmt.Errorf("job file %s: %w", s.key, err)
			}
		}
	}
	return nil
}

func (s setting) set(v string) error {
	switch {
	case s.str != nil:
		*s.str = v
	case s.boolean != nil:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*s.boolean = b
	case s.duration != nil:
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*s.duration = d
	}
	return nil
}

// envOverride fills dst from the environment when the flag was not given.
// It is used for --config and --env-file, which must be known before the job
// file can be read.
func envOverride(cmd *cobra.Command, key string, dst *string) {
	if flagChanged(cmd, key) {
		return
	}
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func flagChanged(cmd *cobra.Command, key string) bool {
	if f := cmd.Flags().Lookup(key); f != nil {
		return f.Changed
	}
	if f := cmd.PersistentFlags().Lookup(key); f != nil {
		return f.Changed
	}
	if f := cmd.InheritedFlags().Lookup(key); f != nil {
		return f.Changed
	}
	return false
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

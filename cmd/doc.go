// Package cmd implements the harvest-submit command-line interface.
//
// The root command resolves the input files of a DQMIO dataset (DAS query,
// local folder or explicit list), builds the harvester command line and
// either runs it in the current terminal or submits it as an HTCondor job,
// optionally on a remote submit node reached over SSH.
//
// New contributors should start with rootCmd.go for the submission flow,
// formatInputFiles.go for input resolution, harvestCommand.go for the command
// line, and condorSubmitter.go for how condor jobs are written and queued.
// applySettings.go documents how flags, environment and the job file merge.
package cmd

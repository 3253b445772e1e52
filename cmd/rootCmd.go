package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "harvest-submit",
	Short: "Submit DQMIO harvesting jobs locally or to HTCondor",
	Long: "Resolves the input files of a DQMIO dataset (from DAS, a local folder or an explicit list), builds the " +
		"harvester command line and runs it in this terminal or submits it as an HTCondor job.",
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := currentJobConfig()
		if err != nil {
			return err
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		logConfig(cfg)

		if cfg.needsProxy() {
			proxy, err := exportProxy(cfg.Proxy)
			if err != nil {
				return err
			}
			cfg.Proxy = proxy
			logger.WithField("proxy", proxy).Info("exported grid proxy")
		}

		files, err := formatInputFiles(ctx, cfg)
		if err != nil {
			return err
		}
		logger.WithField("count", len(files)).Info("resolved input files")

		line := newHarvestCommand(cfg, files).line()
		logger.WithField("command", line).Debug("harvester command")

		rec := newSubmissionRecord(cfg, files, line)

		var job *condorJob
		if cfg.RunMode == runModeCondor {
			job = &condorJob{
				Name:       uniqueJobName(cfg.JobName),
				Command:    line,
				Home:       homeAuto,
				CMSSW:      cfg.CMSSW,
				Proxy:      cfg.Proxy,
				JobFlavour: cfg.JobFlavour,
			}
			rec.JobName = job.Name
		}

		if cfgNoop {
			if job != nil {
				planned, err := plannedJob(*job)
				if err != nil {
					return err
				}
				job = &planned
			}
			if err := writePlan(noopPlanPath, cfg, line, job); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}
			logger.WithField("path", noopPlanPath).Info("noop: plan written, nothing dispatched")
			return nil
		}

		switch cfg.RunMode {
		case runModeLocal:
			code, err := runLocalFunc(ctx, line, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("run harvester: %w", err)
			}
			rec.ExitCode = &code
			entry := logger.WithField("exit_code", code)
			if code != 0 {
				entry.Warn("harvester exited with non-zero status")
			} else {
				entry.Info("harvester finished")
			}
		case runModeCondor:
			sub, err := newSubmitterFunc(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = sub.Close() }()
			res, err := submitCondorJob(ctx, sub, *job)
			if err != nil {
				return err
			}
			rec.WorkDir = res.WorkDir
			rec.ClusterID = res.ClusterID
			logger.WithFields(logrus.Fields{
				"job":        res.Job.Name,
				"workdir":    res.WorkDir,
				"cluster_id": res.ClusterID,
			}).Info("condor job submitted")
		}

		if cfgRecordPath != "" {
			if err := writeSubmissionRecord(cfgRecordPath, rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
			logger.WithField("path", cfgRecordPath).Info("submission record written")
		}
		return nil
	},
}

// prepareRun loads the .env file and the job file, merges them into the
// global settings and configures logging. It runs before every subcommand.
func prepareRun(cmd *cobra.Command, args []string) error {
	envOverride(cmd, "env-file", &cfgEnvFile)
	if cfgEnvFile != "" {
		if err := godotenv.Load(cfgEnvFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}
	envOverride(cmd, "config", &cfgConfigPath)

	var jf *jobFile
	if cfgConfigPath != "" {
		var err error
		jf, err = loadJobFile(cfgConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
	}
	if err := applySettings(cmd, jf); err != nil {
		return err
	}
	return configureLogging(cmd.ErrOrStderr(), cfgLogFormat, cfgLogLevel)
}

func logConfig(cfg jobConfig) {
	logger.WithFields(logrus.Fields{
		"harvester":   cfg.Harvester,
		"runmode":     cfg.RunMode,
		"filemode":    cfg.FileMode,
		"datasetname": cfg.DatasetName,
		"redirector":  cfg.Redirector,
		"mename":      cfg.MEName,
		"outputfile":  cfg.OutputFile,
		"proxy":       cfg.Proxy,
		"cmssw":       cfg.CMSSW,
		"jobflavour":  cfg.JobFlavour,
		"istest":      cfg.IsTest,
	}).Info("running with configuration")
}

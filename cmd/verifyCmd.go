package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a YAML job file",
	Long: "Loads the job file given with --config, merges it with flags and environment the way a submission " +
		"would, and checks that the result is complete. Nothing is queried or dispatched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgConfigPath == "" {
			return errors.New("--config is required (path to YAML job file)")
		}
		cfg, err := currentJobConfig()
		if err != nil {
			return err
		}
		if err := cfg.validate(); err != nil {
			return fmt.Errorf("invalid job file: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Job file OK")
		return nil
	},
}

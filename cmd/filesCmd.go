package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// filesCmd prints the resolved input files, one per line, without building
// or dispatching anything.
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Print the input files a submission would read",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentJobConfig()
		if err != nil {
			return err
		}
		if err := cfg.validateInputs(); err != nil {
			return err
		}
		if cfg.FileMode == fileModeDAS {
			proxy, err := exportProxy(cfg.Proxy)
			if err != nil {
				return err
			}
			cfg.Proxy = proxy
		}
		files, err := formatInputFiles(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		for _, f := range files {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

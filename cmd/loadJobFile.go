package cmd

import (
	"fmt"
	"os"
	"strings"
)

// loadJobFile reads and validates a YAML job file. Only values that are
// present are checked; missing required settings are reported later, once
// flags and environment have been merged in.
func loadJobFile(path string) (*jobFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jf := &jobFile{}
	if err := yamlUnmarshal(b, jf); err != nil {
		return nil, err
	}
	if jf.DatasetName == "" {
		jf.DatasetName = jf.Dataset
	}
	if m := strings.TrimSpace(jf.RunMode); m != "" && m != runModeCondor && m != runModeLocal {
		return nil, fmt.Errorf("runmode: invalid value %q", m)
	}
	if m := strings.TrimSpace(jf.FileMode); m != "" && m != fileModeDAS && m != fileModeLocal {
		return nil, fmt.Errorf("filemode: invalid value %q", m)
	}
	return jf, nil
}

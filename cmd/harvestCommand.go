package cmd

import "strings"

// harvestCommand is the harvester invocation before it is flattened into a
// shell line. Args holds flag/value pairs in the order the harvester expects.
type harvestCommand struct {
	Interpreter string
	Script      string
	Args        []string
}

// newHarvestCommand builds the harvester invocation for the resolved input
// files. Every required flag appears exactly once; --proxy only when a proxy
// is known and --istest only in test mode.
func newHarvestCommand(cfg jobConfig, files []string) harvestCommand {
	args := []string{
		"--filemode", cfg.FileMode,
		"--datasetname", joinInputFiles(files),
		"--redirector", cfg.Redirector,
		"--mename", cfg.MEName,
		"--outputfile", cfg.OutputFile,
	}
	if cfg.Proxy != "" {
		args = append(args, "--proxy", cfg.Proxy)
	}
	if cfg.IsTest {
		args = append(args, "--istest")
	}
	return harvestCommand{Interpreter: cfg.Python, Script: cfg.Harvester, Args: args}
}

// joinInputFiles comma-joins the file list. A single file gets a trailing
// comma so the harvester reads it as a list rather than a dataset or folder.
func joinInputFiles(files []string) string {
	s := strings.Join(files, ",")
	if len(files) == 1 {
		s += ","
	}
	return s
}

// line renders the invocation as one shell command line, quoting only the
// words that need it.
func (c harvestCommand) line() string {
	words := make([]string, 0, len(c.Args)+2)
	if c.Interpreter != "" {
		words = append(words, c.Interpreter)
	}
	words = append(words, c.Script)
	words = append(words, c.Args...)
	return shellJoin(words)
}

package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// homeAuto asks for the job home to be the directory the job was submitted
// from.
const homeAuto = "auto"

// condorJob is one harvester command packaged as an HTCondor job: an
// executable bash script plus a submit description next to it.
type condorJob struct {
	Name       string
	Command    string
	Home       string
	CMSSW      string
	Proxy      string
	JobFlavour string
}

func (j condorJob) scriptName() string { return j.Name + ".sh" }
func (j condorJob) submitName() string { return j.Name + ".jdl" }

// script renders the job executable. The proxy is exported first, then the
// CMSSW runtime environment is set up, then the job moves to its home.
func (j condorJob) script() string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("echo \"current host:\"\nhostname\n")
	if j.Proxy != "" {
		fmt.Fprintf(&b, "export %s=%s\n", proxyEnvVar, shellQuote(j.Proxy))
	}
	if j.CMSSW != "" {
		fmt.Fprintf(&b, "cd %s\n", shellQuote(filepath.Join(j.CMSSW, "src")))
		b.WriteString("eval `scram runtime -sh`\n")
	}
	if j.Home != "" {
		fmt.Fprintf(&b, "cd %s\n", shellQuote(j.Home))
	}
	b.WriteString("echo \"current directory:\"\npwd\n")
	b.WriteString(j.Command)
	b.WriteString("\n")
	return b.String()
}

// submitDescription renders the condor_submit input for this job.
func (j condorJob) submitDescription() string {
	var b strings.Builder
	b.WriteString("universe = vanilla\n")
	fmt.Fprintf(&b, "executable = %s\n", j.scriptName())
	fmt.Fprintf(&b, "output = %s_$(ClusterId)_$(ProcId).out\n", j.Name)
	fmt.Fprintf(&b, "error = %s_$(ClusterId)_$(ProcId).err\n", j.Name)
	fmt.Fprintf(&b, "log = %s_$(ClusterId).log\n", j.Name)
	if j.Proxy != "" {
		fmt.Fprintf(&b, "x509userproxy = %s\n", j.Proxy)
		b.WriteString("use_x509userproxy = true\n")
	}
	if j.JobFlavour != "" {
		fmt.Fprintf(&b, "+JobFlavour = \"%s\"\n", j.JobFlavour)
	}
	b.WriteString("queue\n")
	return b.String()
}

// uniqueJobName appends a short random suffix so that repeated submissions
// from the same directory do not overwrite each other's job files.
func uniqueJobName(base string) string {
	return base + "_" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

var clusterIDPattern = regexp.MustCompile(`submitted to cluster (\d+)`)

// parseClusterID extracts the cluster id from condor_submit output, or ""
// when the output does not report one.
func parseClusterID(out []byte) string {
	m := clusterIDPattern.FindSubmatch(out)
	if m == nil {
		return ""
	}
	return string(m[1])
}

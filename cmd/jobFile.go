package cmd

// jobFile models the YAML job description accepted via --config. Keys mirror
// the CLI flag names so a job file can be produced by copying a command line.
// Every field is optional; flags and environment variables take precedence.
type jobFile struct {
	Harvester   string `yaml:"harvester"`
	RunMode     string `yaml:"runmode"`
	FileMode    string `yaml:"filemode"`
	DatasetName string `yaml:"datasetname"`
	// Dataset is accepted as a shorter alias of datasetname.
	Dataset     string `yaml:"dataset,omitempty"`
	Redirector  string `yaml:"redirector"`
	MEName      string `yaml:"mename"`
	OutputFile  string `yaml:"outputfile"`
	Proxy       string `yaml:"proxy,omitempty"`
	CMSSW       string `yaml:"cmssw,omitempty"`
	JobFlavour  string `yaml:"jobflavour,omitempty"`
	IsTest      *bool  `yaml:"istest,omitempty"`
	TestMatch   string `yaml:"testmatch,omitempty"`

	Python    string `yaml:"python,omitempty"`
	DASClient string `yaml:"dasclient,omitempty"`
	JobName   string `yaml:"jobname,omitempty"`
	JobDir    string `yaml:"jobdir,omitempty"`

	// Optional submit node. Flags override these when set.
	Schedd scheddHost `yaml:"schedd,omitempty"`
}

// scheddHost describes the remote submit node used for condor submission.
type scheddHost struct {
	Host string `yaml:"host"`
	User string `yaml:"user"`
	Dir  string `yaml:"dir,omitempty"`
}

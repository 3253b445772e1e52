package cmd

import "os"

// exitFunc is how Execute ends the process; tests swap it to observe the
// exit status.
var exitFunc = os.Exit

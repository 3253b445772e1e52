package cmd

// session runs one command and is closed afterwards.
type session interface {
	CombinedOutput(cmd string) ([]byte, error)
	Close() error
}

// sessionClient hands out sessions. The persistent shell returns virtual
// sessions that all share one remote shell, so state like cwd carries over.
type sessionClient interface {
	NewSession() (session, error)
}

// exitCoder is implemented by sessions that learn the exit status out of band
// instead of through an error.
type exitCoder interface {
	LastExitCode() int
}

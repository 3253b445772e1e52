package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	srv "github.com/GuillermoFidalgo/ML4DQM-DC/tools/sshserv"
)

func main() {
	addr := flag.String("listen", "127.0.0.1:20222", "address to listen on")
	dir := flag.String("dir", "", "working directory for sessions")
	flag.Parse()

	s, err := srv.Start(*addr, srv.Options{Dir: *dir})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to start test ssh server:", err)
		os.Exit(1)
	}
	_, _ = fmt.Fprintln(os.Stderr, "test ssh server listening on", s.Addr())
	defer func() { _ = s.Close() }()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}

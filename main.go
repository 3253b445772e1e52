package main

import "github.com/GuillermoFidalgo/ML4DQM-DC/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"fmt"
	"os"

	"github.com/temirov/dailyvideos/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the daily-videos-push command.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}

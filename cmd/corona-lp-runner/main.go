// Command corona-lp-runner reads a scenario as JSON and writes the solved plan
// as JSON, using the nextmv runner for input, output and options.
package main

import (
	"context"
	"log"

	"github.com/nextmv-io/sdk/run"

	"github.com/tbadun/co327-corona-lp/pkg/interfaces/runner"
)

func main() {
	err := run.CLI(runner.Solve).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

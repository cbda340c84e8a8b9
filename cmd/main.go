package main

import (
	"os"

	"livequiz-coordinator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

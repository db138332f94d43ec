package main

import (
	"os"

	"github.com/partirhq/partir/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

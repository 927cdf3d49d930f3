package main

import (
	"fmt"
	"os"

	"github.com/vidyasagar/devnews/internal/cli"
)

var version = "0.1.0"

func main() {
	cmd := cli.NewRootCommand(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

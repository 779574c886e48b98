package main

import (
	"fmt"
	"os"

	"task-planner/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

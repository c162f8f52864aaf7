package main

import (
	"os"

	"github.com/cwarden/planer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

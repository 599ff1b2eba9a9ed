package main

import (
	"os"

	"github.com/arantir/favorcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

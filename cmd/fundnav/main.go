package main

import (
	"os"

	"github.com/rustyeddy/fundnav/cmd/fundnav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/rustyeddy/fxscout/cmd/fxscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

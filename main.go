package main

import (
	"os"

	"github.com/storeops/shelfwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

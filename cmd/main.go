package main

import (
	"os"

	"github.com/soundprediction/graphgen/cmd/graphgen"
)

func main() {
	if err := graphgen.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/agiangrant/mobl/internal/cli"
)

// version is overridden at release time via -ldflags.
var version = "0.1.0-dev"

func main() {
	os.Exit(cli.Execute(version))
}

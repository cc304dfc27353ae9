package main

import (
	"os"

	"github.com/hosnas/letsencrypt-vesta/internal/cli"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}

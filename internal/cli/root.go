package cli

import (
	"github.com/hosnas/letsencrypt-vesta/internal/errors"
	"github.com/hosnas/letsencrypt-vesta/internal/output"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd is the main issuance flow. Flag parsing is disabled because the
// grammar interleaves global options with repeated per-user domain groups,
// which the request interpreter owns; cobra still routes the check
// subcommand and renders help.
var rootCmd = &cobra.Command{
	Use:   "letsencrypt-vesta [-m email] [-u] user [domain ...] [-u user [domain ...]] [-a days]",
	Short: "Let's Encrypt certificates for Vesta control panel sites",
	Long: `letsencrypt-vesta obtains a single Let's Encrypt certificate covering the
web domains and aliases of one or more Vesta accounts, installs it per site
through the panel, reloads running web servers, and can queue its own re-run
through at for renewal.

Each -u group names a panel user followed by an optional subset of that
user's domains; with no domains given, every domain the user owns is
included. Unknown users and domains are skipped with a warning.

Global options (anywhere on the line, last occurrence wins):
  -m <email>   contact email for the certificate authority
  -a <days>    queue a re-run of this exact command after <days> days
  --staging    request from the staging CA (test certificate)
  --dry-run    print the aggregated request and stop
  --verbose    enable debug logging

Exit codes: 0 success, 1 usage, 2 no valid users, 3 no valid domains,
4 issuance failure, 5 scheduler unavailable.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runIssue,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		return errors.ExitCode(err)
	}
	return 0
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

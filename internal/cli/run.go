package cli

import (
	"os"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/config"
	"github.com/hosnas/letsencrypt-vesta/internal/errors"
	"github.com/hosnas/letsencrypt-vesta/internal/install"
	"github.com/hosnas/letsencrypt-vesta/internal/logger"
	"github.com/hosnas/letsencrypt-vesta/internal/output"
	"github.com/hosnas/letsencrypt-vesta/internal/request"
	"github.com/spf13/cobra"
)

// processArgs returns the exact command line for re-scheduling.
// Replaceable for testing.
var processArgs = func() []string { return os.Args }

// loadConfig is the configuration source (replaceable for testing).
var loadConfig = config.Load

// runIssue is the root command: aggregate, issue, install, reload,
// schedule.
func runIssue(cmd *cobra.Command, args []string) error {
	// Flag parsing is disabled, so help and version are tokens here.
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return cmd.Help()
		case "--version":
			output.Print("letsencrypt-vesta %s", version)
			return nil
		case "--verbose", "-v":
			// Aggregation warns before parsing finishes, so verbosity
			// has to be live first
			logger.Init(true)
		}
	}

	if len(args) == 0 {
		_ = cmd.Usage()
		return errors.Usage("no arguments supplied")
	}

	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "loading configuration", err)
	}

	d := deps
	if d == nil {
		d = buildDeps(cfg)
	}

	agg := request.NewAggregator(d.Panel)
	opts, err := request.NewInterpreter(agg).Run(args)
	if err != nil {
		_ = cmd.Usage()
		return err
	}

	manifest := agg.Manifest()
	if len(manifest.Accounts) == 0 {
		return errors.ErrNoValidUsers
	}
	if len(manifest.AllDomains) == 0 {
		return errors.ErrNoValidDomains
	}

	email := opts.Email
	if email == "" {
		email = cfg.Email
	}
	if email == "" {
		// Fall back to the first account's panel contact
		email, err = d.Panel.UserContact(manifest.Accounts[0].User)
		if err != nil {
			return errors.Wrap(errors.ErrCodePanel, "resolving contact email", err)
		}
		logger.Debug("using panel contact %s", email)
	}

	renewDays := opts.RenewDays
	if renewDays == 0 {
		renewDays = cfg.RenewDays
	}

	if opts.DryRun {
		return printManifest(manifest, email, renewDays)
	}

	output.Info("Requesting certificate for %d domain(s), common name %s...",
		len(manifest.AllDomains), manifest.CommonName())
	if err := d.Issuer.Obtain(email, manifest.DomainArg(), opts.Staging); err != nil {
		return err
	}
	bundle := d.Issuer.Bundle(manifest.CommonName())

	installer := install.New(d.Panel)
	installed := 0
	for _, acct := range manifest.Accounts {
		for _, domain := range acct.Domains {
			if err := installer.Install(acct.User, domain, bundle); err != nil {
				output.Warn("%v", err)
				continue
			}
			installed++
			output.Success("Installed certificate for %s (user %s)", domain, acct.User)
		}
	}

	if reloaded := d.Reloader.ReloadRunning(); len(reloaded) > 0 {
		output.Info("Reloaded: %s", strings.Join(reloaded, ", "))
	}

	if renewDays > 0 {
		if err := d.Scheduler.Schedule(renewDays, processArgs()); err != nil {
			return err
		}
		output.Info("Renewal run queued in %d day(s)", renewDays)
	}

	output.Success("Done: %d site(s) updated", installed)
	return nil
}

// printManifest renders the aggregated request without contacting the
// certificate authority.
func printManifest(m *request.Manifest, email string, renewDays int) error {
	rows := make([][]string, 0, len(m.Accounts))
	for _, acct := range m.Accounts {
		rows = append(rows, []string{acct.User, strings.Join(acct.Domains, ",")})
	}

	output.Table([]string{"USER", "DOMAINS"}, rows)
	output.Print("")
	output.Print("Certificate domains: %s", m.DomainArg())
	output.Print("Common name: %s", m.CommonName())
	output.Print("Contact email: %s", email)
	if renewDays > 0 {
		output.Print("Renewal: %d day(s)", renewDays)
	}
	return nil
}

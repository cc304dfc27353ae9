package cli

import (
	"github.com/hosnas/letsencrypt-vesta/internal/acme"
	"github.com/hosnas/letsencrypt-vesta/internal/config"
	"github.com/hosnas/letsencrypt-vesta/internal/install"
	"github.com/hosnas/letsencrypt-vesta/internal/panel"
	"github.com/hosnas/letsencrypt-vesta/internal/request"
	"github.com/hosnas/letsencrypt-vesta/internal/schedule"
	"github.com/hosnas/letsencrypt-vesta/internal/service"
)

// Panel is everything the pipeline needs from the control panel: the
// aggregation queries, the installation commands, and the contact lookup.
type Panel interface {
	request.Panel
	install.Panel
	UserContact(user string) (string, error)
}

// Issuer obtains the certificate bundle from the certificate authority.
type Issuer interface {
	IsInstalled() bool
	Obtain(email, domainArg string, staging bool) error
	Bundle(domain string) *acme.Bundle
}

// Reloader reloads running web servers.
type Reloader interface {
	ReloadRunning() []string
}

// Scheduler queues a future re-run.
type Scheduler interface {
	Schedule(days int, command []string) error
}

// Dependencies aggregates the pipeline's external collaborators for
// testability.
type Dependencies struct {
	Panel     Panel
	Issuer    Issuer
	Reloader  Reloader
	Scheduler Scheduler
}

// deps, when non-nil, overrides the collaborators built from config.
// Tests set it through SetDeps.
var deps *Dependencies

// SetDeps replaces the pipeline collaborators (for testing) and returns a
// restore function.
func SetDeps(d *Dependencies) func() {
	old := deps
	deps = d
	return func() { deps = old }
}

// buildDeps wires the real collaborators from configuration.
func buildDeps(cfg *config.Config) *Dependencies {
	return &Dependencies{
		Panel:     panel.New(cfg.VestaBin),
		Issuer:    acme.New(cfg.Certbot, cfg.Webroot, cfg.LiveDir),
		Reloader:  service.New(cfg.Servers),
		Scheduler: schedule.New(),
	}
}

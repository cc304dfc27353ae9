// Package panel wraps the Vesta control panel's v-* command line tools.
//
// Every panel interaction goes through here; the text parsing of the
// panel's stdout stays inside this package so the rest of the program only
// sees structured results. Existence checks are probes: a failing panel
// command means "no", it never aborts the run.
package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/executor"
	"github.com/hosnas/letsencrypt-vesta/internal/logger"
)

// Client executes panel commands from a Vesta bin directory.
type Client struct {
	bin  string
	exec executor.CommandExecutor
}

// New creates a Client for the given Vesta bin directory.
func New(bin string) *Client {
	return &Client{bin: bin, exec: executor.NewSystemExecutor()}
}

// NewWithExecutor creates a Client with a custom executor (for testing).
func NewWithExecutor(bin string, exec executor.CommandExecutor) *Client {
	return &Client{bin: bin, exec: exec}
}

// run executes a panel command by name.
func (c *Client) run(name string, args ...string) ([]byte, error) {
	return c.exec.Execute(filepath.Join(c.bin, name), args...)
}

// UserExists reports whether the account exists in the panel.
func (c *Client) UserExists(user string) (bool, error) {
	out, err := c.run("v-list-user", user, "plain")
	if err != nil {
		logger.Debug("v-list-user %s: %v: %s", user, err, strings.TrimSpace(string(out)))
		return false, nil
	}
	return true, nil
}

// DomainExists reports whether the account owns the web domain.
func (c *Client) DomainExists(user, domain string) (bool, error) {
	out, err := c.run("v-list-web-domain", user, domain, "plain")
	if err != nil {
		logger.Debug("v-list-web-domain %s %s: %v: %s", user, domain, err, strings.TrimSpace(string(out)))
		return false, nil
	}
	return true, nil
}

// ListDomains returns every web domain the account owns, in panel order.
func (c *Client) ListDomains(user string) ([]string, error) {
	out, err := c.run("v-list-web-domains", user, "plain")
	if err != nil {
		return nil, fmt.Errorf("v-list-web-domains failed: %s", strings.TrimSpace(string(out)))
	}

	// plain format: one domain per line, domain is the first column
	var domains []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			domains = append(domains, fields[0])
		}
	}
	return domains, nil
}

// DomainAliases returns the raw ALIAS value of a web domain. The value is
// a comma separated list, an empty string, or Vesta's "no value" marker;
// interpreting it is the resolver's job.
func (c *Client) DomainAliases(user, domain string) (string, error) {
	out, err := c.run("v-list-web-domain", user, domain, "shell")
	if err != nil {
		return "", fmt.Errorf("v-list-web-domain failed: %s", strings.TrimSpace(string(out)))
	}

	for _, line := range strings.Split(string(out), "\n") {
		key, value, found := strings.Cut(line, ":")
		if found && strings.TrimSpace(key) == "ALIAS" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", nil
}

// UserContact returns the account's configured contact email.
func (c *Client) UserContact(user string) (string, error) {
	out, err := c.run("v-get-user-value", user, "CONTACT")
	if err != nil {
		return "", fmt.Errorf("v-get-user-value failed: %s", strings.TrimSpace(string(out)))
	}
	contact := strings.TrimSpace(string(out))
	if contact == "" {
		return "", fmt.Errorf("user %s has no contact email configured", user)
	}
	return contact, nil
}

// HasCertificate reports whether the site already has a certificate
// installed. A failing or empty probe means it does not.
func (c *Client) HasCertificate(user, domain string) bool {
	out, err := c.run("v-list-web-domain-ssl", user, domain, "plain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}

// AddCertificate installs a first certificate for the site from the staged
// files in dir.
func (c *Client) AddCertificate(user, domain, dir string) error {
	out, err := c.run("v-add-web-domain-ssl", user, domain, dir)
	if err != nil {
		return fmt.Errorf("v-add-web-domain-ssl failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// ReplaceCertificate swaps the site's existing certificate for the staged
// one in dir.
func (c *Client) ReplaceCertificate(user, domain, dir string) error {
	out, err := c.run("v-change-web-domain-sslcert", user, domain, dir)
	if err != nil {
		return fmt.Errorf("v-change-web-domain-sslcert failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

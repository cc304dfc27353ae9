// Package acme invokes the external certificate client. The ACME protocol
// itself is entirely the client's business; this package only assembles the
// single certonly invocation and knows where the client leaves the issued
// bundle.
package acme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/errors"
	"github.com/hosnas/letsencrypt-vesta/internal/executor"
)

// Bundle is the three files the client produces for one issuance, keyed by
// the certificate's common name. The bundle is shared by every site on the
// run and is never mutated.
type Bundle struct {
	Domain    string
	CertPath  string // full certificate (leaf + intermediates)
	KeyPath   string // private key
	ChainPath string // trust chain
}

// Client runs the certificate client in obtain-only mode.
type Client struct {
	bin     string
	webroot string
	liveDir string
	exec    executor.CommandExecutor
}

// New creates a Client for the given certbot binary, webroot and live
// directory.
func New(bin, webroot, liveDir string) *Client {
	return &Client{
		bin:     bin,
		webroot: webroot,
		liveDir: liveDir,
		exec:    executor.NewSystemExecutor(),
	}
}

// NewWithExecutor creates a Client with a custom executor (for testing).
func NewWithExecutor(bin, webroot, liveDir string, exec executor.CommandExecutor) *Client {
	c := New(bin, webroot, liveDir)
	c.exec = exec
	return c
}

// IsInstalled checks if the certificate client is installed.
func (c *Client) IsInstalled() bool {
	_, err := c.exec.LookPath(c.bin)
	return err == nil
}

// Obtain runs the client once for the whole comma-joined domain list. The
// certonly mode only fetches the certificate; installation stays with the
// panel. A non-zero exit is fatal for the run.
func (c *Client) Obtain(email, domainArg string, staging bool) error {
	if !c.IsInstalled() {
		return errors.Issuance(fmt.Errorf("%s is not installed", c.bin))
	}

	args := []string{
		"certonly",
		"--non-interactive",
		"--agree-tos",
		"--expand",
		"--webroot",
		"-w", c.webroot,
		"--email", email,
		"-d", domainArg,
	}
	if staging {
		args = append(args, "--test-cert")
	}

	output, err := c.exec.Execute(c.bin, args...)
	if err != nil {
		return errors.Issuance(fmt.Errorf("%s failed: %s", c.bin, strings.TrimSpace(string(output))))
	}
	return nil
}

// Bundle returns the bundle paths for a common name under the live
// directory.
func (c *Client) Bundle(domain string) *Bundle {
	dir := filepath.Join(c.liveDir, domain)
	return &Bundle{
		Domain:    domain,
		CertPath:  filepath.Join(dir, "fullchain.pem"),
		KeyPath:   filepath.Join(dir, "privkey.pem"),
		ChainPath: filepath.Join(dir, "chain.pem"),
	}
}

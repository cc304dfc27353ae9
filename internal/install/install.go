// Package install stages an issued certificate bundle under the filenames
// the panel expects and hands it to the panel's SSL commands.
package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hosnas/letsencrypt-vesta/internal/acme"
	"github.com/hosnas/letsencrypt-vesta/internal/errors"
	"github.com/hosnas/letsencrypt-vesta/internal/logger"
)

// Panel is the subset of panel operations installation needs.
type Panel interface {
	// HasCertificate reports whether the site already has a certificate
	HasCertificate(user, domain string) bool

	// AddCertificate installs a first certificate from the staged files in dir
	AddCertificate(user, domain, dir string) error

	// ReplaceCertificate swaps the existing certificate for the staged one in dir
	ReplaceCertificate(user, domain, dir string) error
}

// Installer installs one shared bundle into each requested site.
type Installer struct {
	panel Panel
}

// New creates an Installer backed by the given panel.
func New(p Panel) *Installer {
	return &Installer{panel: p}
}

// Install stages the bundle for one site and installs it, choosing the
// panel's add or replace command based on whether the site already has a
// certificate. The staging directory is removed in every branch, including
// failures. The bundle files themselves are only read.
func (ins *Installer) Install(user, domain string, bundle *acme.Bundle) error {
	dir, err := os.MkdirTemp("", "letsencrypt-vesta-"+domain+"-")
	if err != nil {
		return errors.Install(user, domain, fmt.Errorf("creating staging directory: %w", err))
	}
	defer os.RemoveAll(dir)

	if err := stage(bundle, domain, dir); err != nil {
		return errors.Install(user, domain, err)
	}

	if ins.panel.HasCertificate(user, domain) {
		logger.Debug("replacing existing certificate for %s/%s", user, domain)
		err = ins.panel.ReplaceCertificate(user, domain, dir)
	} else {
		logger.Debug("adding first certificate for %s/%s", user, domain)
		err = ins.panel.AddCertificate(user, domain, dir)
	}
	if err != nil {
		return errors.Install(user, domain, err)
	}
	return nil
}

// stage copies the bundle into dir as <domain>.crt, <domain>.key and
// <domain>.ca, the names the panel's SSL commands look for.
func stage(bundle *acme.Bundle, domain, dir string) error {
	files := []struct {
		src  string
		dst  string
		perm os.FileMode
	}{
		{bundle.CertPath, domain + ".crt", 0644},
		{bundle.KeyPath, domain + ".key", 0600},
		{bundle.ChainPath, domain + ".ca", 0644},
	}
	for _, f := range files {
		if err := copyFile(f.src, filepath.Join(dir, f.dst), f.perm); err != nil {
			return fmt.Errorf("staging %s: %w", f.dst, err)
		}
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Package service reloads whichever of the known web servers are actually
// running after certificates change. Everything here is best-effort: a
// failed probe or reload is a warning, never a rollback.
package service

import (
	"fmt"
	"strings"

	"github.com/hosnas/letsencrypt-vesta/internal/executor"
	"github.com/hosnas/letsencrypt-vesta/internal/logger"
)

// Reloader probes and reloads a fixed set of web server services.
type Reloader struct {
	servers []string
	exec    executor.CommandExecutor
}

// New creates a Reloader for the given service names.
func New(servers []string) *Reloader {
	return &Reloader{servers: servers, exec: executor.NewSystemExecutor()}
}

// NewWithExecutor creates a Reloader with a custom executor (for testing).
func NewWithExecutor(servers []string, exec executor.CommandExecutor) *Reloader {
	return &Reloader{servers: servers, exec: exec}
}

// IsRunning probes whether a server process exists.
func (r *Reloader) IsRunning(name string) bool {
	_, err := r.exec.Execute("pgrep", "-x", name)
	return err == nil
}

// Reload reloads a single service.
func (r *Reloader) Reload(name string) error {
	output, err := r.exec.Execute("service", name, "reload")
	if err != nil {
		return fmt.Errorf("service %s reload failed: %s", name, strings.TrimSpace(string(output)))
	}
	return nil
}

// ReloadRunning reloads every configured server that is currently running
// and returns the names it reloaded. Failures are logged and skipped.
func (r *Reloader) ReloadRunning() []string {
	var reloaded []string
	for _, name := range r.servers {
		if !r.IsRunning(name) {
			logger.Debug("%s is not running, skipping reload", name)
			continue
		}
		if err := r.Reload(name); err != nil {
			logger.Warn("%v", err)
			continue
		}
		reloaded = append(reloaded, name)
	}
	return reloaded
}

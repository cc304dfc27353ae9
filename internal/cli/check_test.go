package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hosnas/letsencrypt-vesta/internal/config"
	"github.com/hosnas/letsencrypt-vesta/internal/executor"
)

func setCheckExec(t *testing.T, mock executor.CommandExecutor) {
	t.Helper()
	old := checkExec
	checkExec = mock
	t.Cleanup(func() { checkExec = old })
}

func TestCheckPanel(t *testing.T) {
	t.Run("missing bin directory", func(t *testing.T) {
		cfg := config.New()
		cfg.VestaBin = filepath.Join(t.TempDir(), "nope")

		results := checkPanel(cfg)
		if len(results) != 1 || results[0].Status != "error" {
			t.Errorf("expected one error result, got %+v", results)
		}
	})

	t.Run("missing commands are listed", func(t *testing.T) {
		cfg := config.New()
		cfg.VestaBin = t.TempDir()
		for _, name := range panelCommands[:3] {
			if err := os.WriteFile(filepath.Join(cfg.VestaBin, name), []byte("#!/bin/sh\n"), 0755); err != nil {
				t.Fatalf("writing stub: %v", err)
			}
		}

		results := checkPanel(cfg)
		if results[0].Status != "error" {
			t.Fatalf("expected error, got %+v", results[0])
		}
		if !strings.Contains(results[0].Message, "v-add-web-domain-ssl") {
			t.Errorf("expected missing command in message, got %s", results[0].Message)
		}
	})

	t.Run("complete bin directory passes", func(t *testing.T) {
		cfg := config.New()
		cfg.VestaBin = t.TempDir()
		for _, name := range panelCommands {
			if err := os.WriteFile(filepath.Join(cfg.VestaBin, name), []byte("#!/bin/sh\n"), 0755); err != nil {
				t.Fatalf("writing stub: %v", err)
			}
		}

		results := checkPanel(cfg)
		if results[0].Status != "ok" {
			t.Errorf("expected ok, got %+v", results[0])
		}
	})
}

func TestCheckClient(t *testing.T) {
	t.Run("reports version when available", func(t *testing.T) {
		setCheckExec(t, &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("certbot 2.9.0\n"), nil
			},
		})

		r := checkClient(config.New())
		if r.Status != "ok" || r.Message != "certbot 2.9.0" {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("missing client is an error", func(t *testing.T) {
		setCheckExec(t, &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				return "", errors.New("not found")
			},
		})

		if r := checkClient(config.New()); r.Status != "error" {
			t.Errorf("unexpected result: %+v", r)
		}
	})
}

func TestCheckScheduler(t *testing.T) {
	setCheckExec(t, &executor.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("not found")
		},
	})

	if r := checkScheduler(); r.Status != "warning" {
		t.Errorf("expected warning when at is missing, got %+v", r)
	}
}

func TestCheckServers(t *testing.T) {
	t.Run("no running server is an error", func(t *testing.T) {
		setCheckExec(t, &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, errors.New("exit status 1")
			},
		})

		results := checkServers(config.New())
		last := results[len(results)-1]
		if last.Name != "servers" || last.Status != "error" {
			t.Errorf("expected trailing servers error, got %+v", results)
		}
	})

	t.Run("running servers report ok", func(t *testing.T) {
		setCheckExec(t, &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				if args[len(args)-1] == "nginx" {
					return []byte("1234\n"), nil
				}
				return nil, errors.New("exit status 1")
			},
		})

		results := checkServers(config.New())
		for _, r := range results {
			if r.Name == "nginx" && r.Status != "ok" {
				t.Errorf("expected nginx ok, got %+v", r)
			}
			if r.Name == "servers" {
				t.Errorf("unexpected servers error: %+v", r)
			}
		}
	})
}

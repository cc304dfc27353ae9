package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hosnas/letsencrypt-vesta/internal/acme"
)

// mockPanel records installation calls and inspects the staging dir while
// it still exists.
type mockPanel struct {
	hasCert    func(user, domain string) bool
	addErr     error
	replaceErr error

	addCalls     []string
	replaceCalls []string
	stagedFiles  []string
	stagedDir    string
}

func (m *mockPanel) HasCertificate(user, domain string) bool {
	if m.hasCert != nil {
		return m.hasCert(user, domain)
	}
	return false
}

func (m *mockPanel) AddCertificate(user, domain, dir string) error {
	m.addCalls = append(m.addCalls, user+"/"+domain)
	m.recordStaging(dir)
	return m.addErr
}

func (m *mockPanel) ReplaceCertificate(user, domain, dir string) error {
	m.replaceCalls = append(m.replaceCalls, user+"/"+domain)
	m.recordStaging(dir)
	return m.replaceErr
}

func (m *mockPanel) recordStaging(dir string) {
	m.stagedDir = dir
	entries, _ := os.ReadDir(dir)
	m.stagedFiles = nil
	for _, e := range entries {
		m.stagedFiles = append(m.stagedFiles, e.Name())
	}
}

// testBundle writes a fake issued bundle and returns it.
func testBundle(t *testing.T) *acme.Bundle {
	t.Helper()
	dir := t.TempDir()
	b := &acme.Bundle{
		Domain:    "site1.com",
		CertPath:  filepath.Join(dir, "fullchain.pem"),
		KeyPath:   filepath.Join(dir, "privkey.pem"),
		ChainPath: filepath.Join(dir, "chain.pem"),
	}
	for path, content := range map[string]string{
		b.CertPath:  "CERT",
		b.KeyPath:   "KEY",
		b.ChainPath: "CHAIN",
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing bundle file: %v", err)
		}
	}
	return b
}

func TestInstall(t *testing.T) {
	t.Run("no existing certificate uses add", func(t *testing.T) {
		panel := &mockPanel{}
		bundle := testBundle(t)

		if err := New(panel).Install("alice", "site1.com", bundle); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if len(panel.addCalls) != 1 || len(panel.replaceCalls) != 0 {
			t.Errorf("expected one add call, got add=%v replace=%v", panel.addCalls, panel.replaceCalls)
		}

		want := map[string]bool{"site1.com.crt": true, "site1.com.key": true, "site1.com.ca": true}
		if len(panel.stagedFiles) != len(want) {
			t.Fatalf("unexpected staged files: %v", panel.stagedFiles)
		}
		for _, name := range panel.stagedFiles {
			if !want[name] {
				t.Errorf("unexpected staged file %s", name)
			}
		}
	})

	t.Run("existing certificate uses replace", func(t *testing.T) {
		panel := &mockPanel{
			hasCert: func(user, domain string) bool { return true },
		}
		if err := New(panel).Install("alice", "site1.com", testBundle(t)); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if len(panel.replaceCalls) != 1 || len(panel.addCalls) != 0 {
			t.Errorf("expected one replace call, got add=%v replace=%v", panel.addCalls, panel.replaceCalls)
		}
	})

	t.Run("choice is evaluated per site", func(t *testing.T) {
		panel := &mockPanel{
			hasCert: func(user, domain string) bool { return domain == "site2.com" },
		}
		ins := New(panel)
		bundle := testBundle(t)

		if err := ins.Install("alice", "site1.com", bundle); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if err := ins.Install("bob", "site2.com", bundle); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if len(panel.addCalls) != 1 || panel.addCalls[0] != "alice/site1.com" {
			t.Errorf("unexpected add calls: %v", panel.addCalls)
		}
		if len(panel.replaceCalls) != 1 || panel.replaceCalls[0] != "bob/site2.com" {
			t.Errorf("unexpected replace calls: %v", panel.replaceCalls)
		}
	})

	t.Run("staging dir is removed after success", func(t *testing.T) {
		panel := &mockPanel{}
		if err := New(panel).Install("alice", "site1.com", testBundle(t)); err != nil {
			t.Fatalf("Install failed: %v", err)
		}
		if _, err := os.Stat(panel.stagedDir); !os.IsNotExist(err) {
			t.Errorf("staging dir %s still exists", panel.stagedDir)
		}
	})

	t.Run("staging dir is removed after panel failure", func(t *testing.T) {
		panel := &mockPanel{addErr: errors.New("panel rejected certificate")}
		err := New(panel).Install("alice", "site1.com", testBundle(t))
		if err == nil {
			t.Fatal("expected error")
		}
		if _, statErr := os.Stat(panel.stagedDir); !os.IsNotExist(statErr) {
			t.Errorf("staging dir %s still exists", panel.stagedDir)
		}
	})

	t.Run("missing bundle file fails without panel calls", func(t *testing.T) {
		panel := &mockPanel{}
		bundle := &acme.Bundle{
			Domain:    "site1.com",
			CertPath:  "/nonexistent/fullchain.pem",
			KeyPath:   "/nonexistent/privkey.pem",
			ChainPath: "/nonexistent/chain.pem",
		}
		if err := New(panel).Install("alice", "site1.com", bundle); err == nil {
			t.Fatal("expected error")
		}
		if len(panel.addCalls)+len(panel.replaceCalls) != 0 {
			t.Errorf("expected no panel calls, got add=%v replace=%v", panel.addCalls, panel.replaceCalls)
		}
	})
}

package cli

import (
	"path/filepath"

	"github.com/hosnas/letsencrypt-vesta/internal/acme"
	"github.com/hosnas/letsencrypt-vesta/internal/request"
)

// MockPanel is a full Panel test double: the aggregation queries come from
// the embedded request mock, the installation side records its calls here.
type MockPanel struct {
	request.MockPanel

	ContactFunc func(user string) (string, error)
	HasCertFunc func(user, domain string) bool
	AddErr      error
	ReplaceErr  error

	AddCalls     []string
	ReplaceCalls []string
}

// UserContact calls the mock function
func (m *MockPanel) UserContact(user string) (string, error) {
	if m.ContactFunc != nil {
		return m.ContactFunc(user)
	}
	return user + "@example.com", nil
}

// HasCertificate calls the mock function
func (m *MockPanel) HasCertificate(user, domain string) bool {
	if m.HasCertFunc != nil {
		return m.HasCertFunc(user, domain)
	}
	return false
}

// AddCertificate records the call
func (m *MockPanel) AddCertificate(user, domain, dir string) error {
	m.AddCalls = append(m.AddCalls, user+"/"+domain)
	return m.AddErr
}

// ReplaceCertificate records the call
func (m *MockPanel) ReplaceCertificate(user, domain, dir string) error {
	m.ReplaceCalls = append(m.ReplaceCalls, user+"/"+domain)
	return m.ReplaceErr
}

// ObtainCall records one issuance request.
type ObtainCall struct {
	Email   string
	Domains string
	Staging bool
}

// MockIssuer is an Issuer test double serving bundles from LiveDir.
type MockIssuer struct {
	NotInstalled bool
	ObtainErr    error
	LiveDir      string
	ObtainCalls  []ObtainCall
}

// IsInstalled reports the mocked install state
func (m *MockIssuer) IsInstalled() bool {
	return !m.NotInstalled
}

// Obtain records the call
func (m *MockIssuer) Obtain(email, domainArg string, staging bool) error {
	m.ObtainCalls = append(m.ObtainCalls, ObtainCall{Email: email, Domains: domainArg, Staging: staging})
	return m.ObtainErr
}

// Bundle returns bundle paths under LiveDir
func (m *MockIssuer) Bundle(domain string) *acme.Bundle {
	dir := filepath.Join(m.LiveDir, domain)
	return &acme.Bundle{
		Domain:    domain,
		CertPath:  filepath.Join(dir, "fullchain.pem"),
		KeyPath:   filepath.Join(dir, "privkey.pem"),
		ChainPath: filepath.Join(dir, "chain.pem"),
	}
}

// MockReloader is a Reloader test double.
type MockReloader struct {
	Reloaded []string
	Calls    int
}

// ReloadRunning records the call and reports the configured names
func (m *MockReloader) ReloadRunning() []string {
	m.Calls++
	return m.Reloaded
}

// ScheduleCall records one scheduling request.
type ScheduleCall struct {
	Days    int
	Command []string
}

// MockScheduler is a Scheduler test double.
type MockScheduler struct {
	Err   error
	Calls []ScheduleCall
}

// Schedule records the call
func (m *MockScheduler) Schedule(days int, command []string) error {
	m.Calls = append(m.Calls, ScheduleCall{Days: days, Command: command})
	return m.Err
}

// Package request builds the certificate request for one run: it resolves
// each site's alias set, validates accounts and domains against the panel,
// and accumulates everything into a single Manifest.
//
// The manifest drives the rest of the pipeline. Its flattened domain list
// becomes the one certbot invocation; its per-account lists drive the
// per-site installation afterwards. The first flattened entry is the
// certificate's common name and the key under which the client stores the
// issued bundle.
package request

import "strings"

// DomainGroup is the resolved domain set for one site: the primary domain
// first, then its aliases in the order the panel reports them. Never empty.
type DomainGroup []string

// AccountRequest is one panel account's share of the run: the account name
// and the primary domains selected for it, in selection order.
type AccountRequest struct {
	User    string
	Domains []string
}

// Manifest is the run-scoped accumulator filled during argument parsing.
// Accounts appear in command line order; AllDomains is the flattened
// sequence of every resolved DomainGroup across all accounts.
//
// Repeated -u groups for the same account produce independent entries;
// nothing is deduplicated.
type Manifest struct {
	Accounts   []AccountRequest
	AllDomains []string
}

// CommonName returns the domain used as the certificate's common name and
// as the bundle lookup key. Empty manifest returns "".
func (m *Manifest) CommonName() string {
	if len(m.AllDomains) == 0 {
		return ""
	}
	return m.AllDomains[0]
}

// DomainArg returns the comma-joined flattened domain list, the form the
// certificate client takes on its -d flag.
func (m *Manifest) DomainArg() string {
	return strings.Join(m.AllDomains, ",")
}

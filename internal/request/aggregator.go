package request

import (
	"github.com/hosnas/letsencrypt-vesta/internal/logger"
)

// Aggregator validates accounts against the panel and accumulates their
// resolved domain groups into a Manifest. Validation failures are warnings:
// a bad account or domain is skipped and the run continues.
type Aggregator struct {
	panel    Panel
	resolver *Resolver
	manifest *Manifest
}

// NewAggregator creates an Aggregator with an empty manifest.
func NewAggregator(p Panel) *Aggregator {
	return &Aggregator{
		panel:    p,
		resolver: NewResolver(p),
		manifest: &Manifest{},
	}
}

// Manifest returns the accumulated manifest.
func (a *Aggregator) Manifest() *Manifest {
	return a.manifest
}

// AddAccount processes one -u group. An empty explicit list means every web
// domain the account owns; a non-empty list is validated domain by domain,
// keeping the valid ones in the order given. An account that ends up with
// no domains contributes nothing to the manifest.
func (a *Aggregator) AddAccount(user string, explicit []string) {
	ok, err := a.panel.UserExists(user)
	if err != nil {
		logger.Warn("skipping user %s: panel query failed: %v", user, err)
		return
	}
	if !ok {
		logger.Warn("skipping user %s: not found in panel", user)
		return
	}

	selected := a.selectDomains(user, explicit)
	if len(selected) == 0 {
		return
	}

	acct := AccountRequest{User: user}
	for _, domain := range selected {
		group, err := a.resolver.Resolve(user, domain)
		if err != nil {
			// Domain already validated; request it without aliases
			logger.Warn("alias lookup failed for %s/%s, requesting primary only: %v", user, domain, err)
			group = DomainGroup{domain}
		}
		a.manifest.AllDomains = append(a.manifest.AllDomains, group...)
		acct.Domains = append(acct.Domains, domain)
	}
	a.manifest.Accounts = append(a.manifest.Accounts, acct)
}

// selectDomains picks the sites to include for a validated account.
func (a *Aggregator) selectDomains(user string, explicit []string) []string {
	if len(explicit) == 0 {
		domains, err := a.panel.ListDomains(user)
		if err != nil {
			logger.Warn("skipping user %s: domain listing failed: %v", user, err)
			return nil
		}
		return domains
	}

	var selected []string
	for _, domain := range explicit {
		ok, err := a.panel.DomainExists(user, domain)
		if err != nil {
			logger.Warn("skipping domain %s: panel query failed: %v", domain, err)
			continue
		}
		if !ok {
			logger.Warn("skipping domain %s: does not belong to user %s", domain, user)
			continue
		}
		selected = append(selected, domain)
	}
	return selected
}

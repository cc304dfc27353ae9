package request

import "strings"

// Panel is the subset of panel operations aggregation needs. Implemented by
// panel.Client; narrowed here so tests can stub it without an executor.
type Panel interface {
	// UserExists reports whether the account exists in the panel
	UserExists(user string) (bool, error)

	// DomainExists reports whether the account owns the web domain
	DomainExists(user, domain string) (bool, error)

	// ListDomains returns every web domain the account owns
	ListDomains(user string) ([]string, error)

	// DomainAliases returns the raw alias value for a web domain,
	// e.g. "www.example.com,mail.example.com", "" or "no value"
	DomainAliases(user, domain string) (string, error)
}

// noAliasValue is what Vesta prints for a domain without aliases.
const noAliasValue = "no value"

// Resolver turns a (user, domain) pair into the DomainGroup that must
// appear on the certificate for that site.
type Resolver struct {
	panel Panel
}

// NewResolver creates a Resolver backed by the given panel.
func NewResolver(p Panel) *Resolver {
	return &Resolver{panel: p}
}

// Resolve queries the panel for the domain's aliases and returns the group
// primary-first. The domain is assumed to exist; existence is validated by
// the aggregator before this is called.
func (r *Resolver) Resolve(user, domain string) (DomainGroup, error) {
	raw, err := r.panel.DomainAliases(user, domain)
	if err != nil {
		return nil, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noAliasValue {
		return DomainGroup{domain}, nil
	}

	group := DomainGroup{domain}
	for _, alias := range strings.Split(raw, ",") {
		alias = strings.TrimSpace(alias)
		if alias != "" {
			group = append(group, alias)
		}
	}
	return group, nil
}

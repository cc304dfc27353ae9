package request

// MockPanel is a Panel test double. Unset functions default to an existing
// user with no domains and no aliases. Calls records every query for
// verification.
type MockPanel struct {
	UserExistsFunc    func(user string) (bool, error)
	DomainExistsFunc  func(user, domain string) (bool, error)
	ListDomainsFunc   func(user string) ([]string, error)
	DomainAliasesFunc func(user, domain string) (string, error)
	Calls             []string
}

// UserExists calls the mock function
func (m *MockPanel) UserExists(user string) (bool, error) {
	m.Calls = append(m.Calls, "UserExists "+user)
	if m.UserExistsFunc != nil {
		return m.UserExistsFunc(user)
	}
	return true, nil
}

// DomainExists calls the mock function
func (m *MockPanel) DomainExists(user, domain string) (bool, error) {
	m.Calls = append(m.Calls, "DomainExists "+user+" "+domain)
	if m.DomainExistsFunc != nil {
		return m.DomainExistsFunc(user, domain)
	}
	return true, nil
}

// ListDomains calls the mock function
func (m *MockPanel) ListDomains(user string) ([]string, error) {
	m.Calls = append(m.Calls, "ListDomains "+user)
	if m.ListDomainsFunc != nil {
		return m.ListDomainsFunc(user)
	}
	return nil, nil
}

// DomainAliases calls the mock function
func (m *MockPanel) DomainAliases(user, domain string) (string, error) {
	m.Calls = append(m.Calls, "DomainAliases "+user+" "+domain)
	if m.DomainAliasesFunc != nil {
		return m.DomainAliasesFunc(user, domain)
	}
	return "", nil
}

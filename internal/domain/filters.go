package domain

// DeploymentFilter defines filtering options for recorded deployments
type DeploymentFilter struct {
	Environment string
	ChainID     string
	Category    ContractCategory
	Name        string
}

// Matches reports whether an entry passes every non-empty filter field.
func (f DeploymentFilter) Matches(entry RecordEntry) bool {
	if f.Environment != "" && entry.Key.Environment != f.Environment {
		return false
	}
	if f.ChainID != "" && entry.Key.ChainID != f.ChainID {
		return false
	}
	if f.Category != "" && entry.Key.Category != f.Category {
		return false
	}
	if f.Name != "" && entry.Key.Name != f.Name {
		return false
	}
	return true
}

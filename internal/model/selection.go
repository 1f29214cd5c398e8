package model

// RuleConfig holds the auto-select criteria. Every field is optional.
type RuleConfig struct {
	PreferSmallerResolution bool
	PreferSmallerFileSize   bool
	PreferOlderModTime      bool
	MinSimilarity           *float64
	RequireSameFilename     bool
}

// HasPreference reports whether any side-choosing criterion is enabled.
func (c RuleConfig) HasPreference() bool {
	return c.PreferSmallerResolution || c.PreferSmallerFileSize || c.PreferOlderModTime
}

// HasGate reports whether any eligibility filter is set.
func (c RuleConfig) HasGate() bool {
	return c.MinSimilarity != nil || c.RequireSameFilename
}

// IsActive reports whether running the engine with this config does anything.
func (c RuleConfig) IsActive() bool {
	return c.HasPreference() || c.HasGate()
}

// AutoSelectResult summarises an auto-select run.
type AutoSelectResult struct {
	Selected int // pairs marked by this run
	Cleared  int // pairs whose mark was removed by the eligibility gate
}

package domain

import (
	"log/slog"

	m "twinpick.dev/pkg/twinpick/internal/model"
)

// DefaultSide is marked when preference criteria are enabled but none of them
// tells the two files apart. The first file reported by the scan survives.
const DefaultSide = m.SideB

// RuleOutcome is the set of mark changes computed by the rule engine.
type RuleOutcome struct {
	Marks    map[int]m.Side
	Selected int
	Cleared  int
}

// RuleEngine decides which member of each active pair should be marked for
// deletion.
type RuleEngine interface {
	Evaluate(pairs []m.Pair, config m.RuleConfig) (RuleOutcome, error)
}

type ruleEngine struct{}

// NewRuleEngine creates a RuleEngine.
func NewRuleEngine() RuleEngine {
	return &ruleEngine{}
}

func (e *ruleEngine) Evaluate(pairs []m.Pair, config m.RuleConfig) (RuleOutcome, error) {
	if !config.IsActive() {
		return RuleOutcome{}, ErrNoCriteriaActive
	}

	outcome := RuleOutcome{Marks: map[int]m.Side{}}

	for _, pair := range pairs {
		if pair.Status != m.StatusActive {
			continue
		}

		// Never queue the last surviving copy of a pair.
		if pair.File1.Path.IsDeleted() || pair.File2.Path.IsDeleted() {
			continue
		}

		if !Eligible(pair, config) {
			if pair.Marked != m.SideNone {
				outcome.Cleared++
			}

			outcome.Marks[pair.Index] = m.SideNone

			continue
		}

		side := ChooseSide(pair.File1, pair.File2, config)
		if side == m.SideNone {
			continue
		}

		outcome.Marks[pair.Index] = side
		outcome.Selected++
	}

	slog.Debug("Evaluated auto-select rules",
		"pairs", len(pairs), "selected", outcome.Selected, "cleared", outcome.Cleared)

	return outcome, nil
}

// Eligible applies the AND gate of similarity and filename filters.
func Eligible(pair m.Pair, config m.RuleConfig) bool {
	if config.MinSimilarity != nil && pair.Similarity < *config.MinSimilarity {
		return false
	}

	if config.RequireSameFilename && pair.File1.Path.Base() != pair.File2.Path.Base() {
		return false
	}

	return true
}

// ChooseSide returns the side to delete. Criteria are tried in a fixed order
// and the first one that strictly discriminates wins. Gates never pick a
// side: without a preference criterion the result is SideNone.
func ChooseSide(a, b m.FileInfo, config m.RuleConfig) m.Side {
	if !config.HasPreference() {
		return m.SideNone
	}

	if config.PreferSmallerResolution {
		if side := smaller(a.Resolution.Pixels(), b.Resolution.Pixels()); side != m.SideNone {
			return side
		}
	}

	if config.PreferSmallerFileSize {
		if side := smaller(a.FileSize, b.FileSize); side != m.SideNone {
			return side
		}
	}

	if config.PreferOlderModTime {
		if side := smaller(a.ModTime, b.ModTime); side != m.SideNone {
			return side
		}
	}

	return DefaultSide
}

func smaller[T int64 | float64](a, b T) m.Side {
	switch {
	case a < b:
		return m.SideA
	case b < a:
		return m.SideB
	}

	return m.SideNone
}

package depgraph

import (
	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/rules"
)

// Status classifies a node in a dependency tree.
type Status int

const (
	// StatusSatisfied means the requirement is installed, either directly
	// or through a replacement rule.
	StatusSatisfied Status = iota

	// StatusMissing means the requirement is neither installed nor covered
	// by any rule.
	StatusMissing

	// StatusIgnored means an ignore rule covers the requirement. Ignored
	// wins over satisfied when both apply.
	StatusIgnored

	// StatusCycle marks the point where a branch re-entered one of its own
	// ancestors. Cycle nodes are always leaves.
	StatusCycle
)

func (s Status) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusMissing:
		return "missing"
	case StatusIgnored:
		return "ignored"
	case StatusCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status as its string form so reports stay
// readable without a decoder ring.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Evaluate applies the rule and install checks in precedence order:
// ignored beats satisfied beats missing.
func Evaluate(id catalog.ModID, r *rules.Rules, installed map[catalog.ModID]bool) Status {
	if r.IsIgnored(id) {
		return StatusIgnored
	}
	if r.IsSatisfied(id, installed) {
		return StatusSatisfied
	}
	return StatusMissing
}

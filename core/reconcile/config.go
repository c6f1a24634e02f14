package reconcile

import (
	"fmt"
	"strings"
)

// Policy selects how a batch reacts to item failures.
type Policy string

const (
	// PolicyAtomic refuses invalid batches up front and rolls everything back on the first statement error.
	PolicyAtomic Policy = "atomic"
	// PolicyTolerant records item failures and commits the items that succeeded.
	PolicyTolerant Policy = "tolerant"
)

// ParsePolicy reads a policy name. An empty name selects PolicyAtomic.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAtomic:
		return PolicyAtomic, nil
	case PolicyTolerant:
		return PolicyTolerant, nil
	default:
		return "", fmt.Errorf("unknown reconcile policy %q", s)
	}
}

// Config holds reconciliation settings.
type Config struct {
	// Policy is either "atomic" or "tolerant".
	Policy string `mapstructure:"policy" default:"atomic"`
}

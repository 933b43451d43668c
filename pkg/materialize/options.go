package materialize

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/svcgen/pkg/errors"
	"github.com/arthur-debert/svcgen/pkg/logging"
	"github.com/arthur-debert/svcgen/pkg/substitute"
	"github.com/rs/zerolog"
)

// Policy controls what a run does after a node fails
type Policy int

const (
	// FailFast stops the whole run at the first failure
	FailFast Policy = iota
	// BestEffort abandons the failing branch and carries on with its siblings
	BestEffort
)

// String returns the flag spelling of the policy
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "fail-fast" or "best-effort". The empty string is
// FailFast.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	default:
		return FailFast, errors.Newf(errors.ErrInvalidInput, "unknown failure policy %q", s).
			WithDetail("policy", s)
	}
}

// Options configures a Run
type Options struct {
	// Overwrite replaces files that already exist
	Overwrite bool
	Policy    Policy
	// DryRun inspects the destination without changing it
	DryRun       bool
	Substitution substitute.Options
	Logger       zerolog.Logger
}

// DefaultOptions returns fail-fast, overwriting options logging under the
// "materialize" component
func DefaultOptions() Options {
	return Options{
		Overwrite: true,
		Policy:    FailFast,
		Logger:    logging.GetLogger("materialize"),
	}
}

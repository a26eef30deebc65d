package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// CheckConstraint reports whether current satisfies a semver constraint such as ">= 0.2, < 1".
// An empty constraint and the "main" development build always pass.
func CheckConstraint(constraint, current string) error {
	constraint = strings.TrimSpace(constraint)
	current = strings.TrimPrefix(current, "v")

	if constraint == "" || current == "main" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid version constraint %q", constraint)
	}

	v, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid version %q", current)
	}

	if ok, reasons := c.Validate(v); !ok {
		msg := make([]string, len(reasons))
		for i, r := range reasons {
			msg[i] = r.Error()
		}

		return errors.Newf(errors.ErrCodeInvalidConfiguration, "argo-signals %s does not satisfy %q: %s",
			current, constraint, strings.Join(msg, "; "))
	}

	return nil
}

package casestudy

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SemVer parses the dataset's version field. Short forms such as "1.0" are
// accepted and normalised.
func (d *Dataset) SemVer() (*semver.Version, error) {
	if d.Version == "" {
		return nil, fmt.Errorf("%w: dataset has no version", ErrVersionMismatch)
	}
	v, err := semver.NewVersion(d.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dataset version %q: %v", ErrVersionMismatch, d.Version, err)
	}
	return v, nil
}

// CheckVersion verifies the dataset version satisfies constraint.
// An empty constraint always passes.
func (d *Dataset) CheckVersion(constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	v, err := d.SemVer()
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: dataset version %s does not satisfy %s", ErrVersionMismatch, v, constraint)
	}
	return nil
}

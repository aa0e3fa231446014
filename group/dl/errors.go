package dl

import "errors"

// Package-level sentinel errors for the DL group realization.
var (
	// errInvalidElement is returned when a decoded residue falls outside
	// [0, p).
	errInvalidElement = errors.New("dl: element out of range")

	// errNotInSubgroup is returned when a decoded residue does not
	// satisfy y^q == 1 (mod p).
	errNotInSubgroup = errors.New("dl: element not in order-q subgroup")

	// ErrDegenerateParams is returned by generator/parameter validation
	// when g == h or either generator equals the subgroup identity.
	ErrDegenerateParams = errors.New("dl: degenerate parameters (g == h or generator == 1)")
)

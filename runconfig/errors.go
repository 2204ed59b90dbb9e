package runconfig

import "errors"

// Configuration errors are fatal and must surface before any chain starts
// stepping (spec §7).
var (
	ErrSpinsNotSquare   = errors.New("runconfig: spins is not a perfect square")
	ErrBetaNonPositive  = errors.New("runconfig: beta must be > 0")
	ErrMissingVariant   = errors.New("runconfig: variant is required")
	ErrUnknownVariant   = errors.New("runconfig: unknown variant")
	ErrStepsNonPositive = errors.New("runconfig: steps must be > 0")
)

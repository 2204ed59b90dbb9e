package lattice

import "errors"

// Sentinel errors for lattice construction and loading.
var (
	// ErrNotSquare indicates a spin count whose square root is not an integer.
	ErrNotSquare = errors.New("lattice: spin count is not a perfect square")
	// ErrEmptyFile indicates a couplings file with no rows, or whose rows
	// list no edges at all.
	ErrEmptyFile = errors.New("lattice: couplings file has no rows")
	// ErrRowMismatch indicates a couplings row whose site index is out of order
	// or whose neighbour/value columns are not paired.
	ErrRowMismatch = errors.New("lattice: malformed couplings row")
	// ErrAsymmetric indicates a reciprocal coupling entry J_ij != J_ji.
	ErrAsymmetric = errors.New("lattice: couplings matrix is not symmetric")
)

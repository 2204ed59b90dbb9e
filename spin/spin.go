// Package spin defines the spin-configuration domain type shared by every
// chain driver: an ordered vector of signed unit spins, plus the ±1 ⇄ {0,1}
// boundary conversion the exchange driver needs at its RBM coupling.
package spin

import "fmt"

// Configuration is a vector s ∈ {-1,+1}^N representing the state of every
// lattice site. Stored as int8 since that is also the emitted sample dtype
// (spec: "8-bit signed integers").
type Configuration []int8

// Up and Down are the only legal spin values.
const (
	Up   int8 = 1
	Down int8 = -1
)

// Valid reports whether every entry of s is in {-1,+1}.
func Valid(s Configuration) bool {
	for _, v := range s {
		if v != Up && v != Down {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s, the copy drivers emit into their output
// sequence so later mutation of the live chain state cannot alias it.
func Clone(s Configuration) Configuration {
	c := make(Configuration, len(s))
	copy(c, s)
	return c
}

// Flip returns a new configuration with bit k inverted, leaving s untouched.
func Flip(s Configuration, k int) Configuration {
	c := Clone(s)
	c[k] = -c[k]
	return c
}

// Hamming returns the number of sites at which a and b differ. Used by the
// hybrid-stochastic driver to detect when a neural proposal happens to
// coincide with a single-flip move.
func Hamming(a, b Configuration) int {
	if len(a) != len(b) {
		panic(fmt.Sprintf("spin: length mismatch %d != %d", len(a), len(b)))
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// ToBinary converts the ±1 convention to the RBM's {0,1} convention:
// x = (s+1)/2.
func ToBinary(s Configuration) []int8 {
	x := make([]int8, len(s))
	for i, v := range s {
		x[i] = (v + 1) / 2
	}
	return x
}

// FromBinary converts the RBM's {0,1} convention back to ±1: s = 2x-1.
func FromBinary(x []int8) Configuration {
	s := make(Configuration, len(x))
	for i, v := range x {
		s[i] = 2*v - 1
	}
	return s
}

// Package energy implements the Hamiltonian kernels: total energy and the
// single-spin ΔH used to decide and replay local moves (spec §4.1). These
// are the hot loops of the whole engine — plain loops over the lattice's
// padded, contiguous neighbour/coupling rows (lattice.Couplings), the memory
// layout spec §9 calls out as the relevant design decision once the original
// JIT-compiled numeric kernels become ordinary Go.
package energy

import "isingmcmc/lattice"

// Total returns E(s) = 1/2 * Σ_i Σ_{j<deg[i]} s[i]*s[neighbours[i][j]]*couplings[i][j]
// (the factor 1/2 compensates for each edge being counted from both
// endpoints). There is no leading minus: an aligned pair with a positive
// coupling raises the energy, so a ferromagnetic bond has a negative coupling
// in this convention.
func Total(s []int8, c *lattice.Couplings) float64 {
	var e float64
	for i := 0; i < c.N; i++ {
		nbrs := c.Neighbours[i]
		vals := c.Values[i]
		deg := c.Deg[i]
		var local float64
		for j := 0; j < deg; j++ {
			local += float64(s[nbrs[j]]) * vals[j]
		}
		e += float64(s[i]) * local
	}
	return e / 2.0
}

// DeltaH returns Total(s') - Total(s) for s' equal to s with site k flipped,
// without touching s: -2 * s[k] * Σ_{j<deg[k]} s[neighbours[k][j]] * couplings[k][j].
// This is the only quantity a local-chain driver needs to decide a move and
// to update its cached energy by E += DeltaH, with no full recomputation.
//
// Sign note: this keeps E += DeltaH self-consistent with Total (spec §4.1's
// invariant 3, "ΔH correctness"), matching original_source's compute_delta_h;
// spec.md's S1 prose example states a ΔH of the opposite sign, which would
// require Total itself to carry an extra leading minus it does not carry in
// the same example's own E=8 computation. See DESIGN.md.
func DeltaH(k int, s []int8, c *lattice.Couplings) float64 {
	nbrs := c.Neighbours[k]
	vals := c.Values[k]
	deg := c.Deg[k]
	var sum float64
	for j := 0; j < deg; j++ {
		sum += float64(s[nbrs[j]]) * vals[j]
	}
	return -2.0 * float64(s[k]) * sum
}

// Boltzmann returns the log-Boltzmann weight -beta*E, i.e. ln pi(s) up to the
// (cancelling) normalization constant.
func Boltzmann(e, beta float64) float64 {
	return -beta * e
}

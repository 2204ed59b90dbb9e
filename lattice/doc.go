// Package lattice holds the sparse coupling matrix J_ij for an Ising-style
// spin lattice, and the torus/file constructors that build one.
//
// What:
//
//   - Couplings stores, per site, a row of neighbour indices and coupling
//     values padded to a common width D, with a true-degree vector bounding
//     the padding (spec: "Lattice / Couplings table").
//   - NewTorus builds the periodic nearest-neighbour square lattice used by
//     the worked examples (2x2, 3x3 ferromagnets).
//   - LoadAdjacency parses the sparse text format described in doc comments
//     on that function.
//
// Why:
//
//   - Row-major contiguous neighbour/coupling slices keep the energy kernels'
//     inner loops (package energy) cache-friendly; this is the only memory
//     layout decision spec.md calls out (§9).
//
// Errors:
//
//   - ErrNotSquare: spin count has no integer square root.
//   - ErrEmptyFile / ErrRowMismatch / ErrAsymmetric: malformed couplings file.
package lattice

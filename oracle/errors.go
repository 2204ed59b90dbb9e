package oracle

import "errors"

// ErrExhausted is returned by Source.Next once every prefetched proposal has
// been consumed. Spec §4.7/§7 treats oracle exhaustion mid-run as fatal;
// drivers surface it rather than retrying or blocking.
var ErrExhausted = errors.New("oracle: proposal source exhausted")

// ErrShapeMismatch is returned by Validate when a proposal's spin count does
// not match the expected lattice size or a spin lies outside {-1,+1}.
var ErrShapeMismatch = errors.New("oracle: proposal shape mismatch")

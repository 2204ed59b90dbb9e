package oracle

import "isingmcmc/spin"

// SliceSource adapts an already-materialized, finite batch of proposals
// (e.g. loaded whole from a checkpoint file, or generated once up front by
// a collaborator process) into a Source. This is the common case: spec §4.2
// "prefetched list of proposals" arrives as a slice, not a live stream.
type SliceSource struct {
	proposals []Proposal
	pos       int
}

// NewSliceSource wraps proposals for sequential consumption starting at
// index 0.
func NewSliceSource(proposals []Proposal) *SliceSource {
	return &SliceSource{proposals: proposals}
}

// Next returns the next proposal in order, or ErrExhausted once the slice
// is drained.
func (s *SliceSource) Next() (Proposal, error) {
	if s.pos >= len(s.proposals) {
		return Proposal{}, ErrExhausted
	}
	p := s.proposals[s.pos]
	s.pos++
	return p, nil
}

// Prefetch is a no-op: the whole batch is already resident.
func (s *SliceSource) Prefetch(n int) error {
	return nil
}

// Remaining reports how many proposals are left unconsumed.
func (s *SliceSource) Remaining() int {
	return len(s.proposals) - s.pos
}

// Validate checks every proposal's configuration has exactly n spins, each
// in {-1,+1}, returning ErrShapeMismatch on the first violation. The drivers
// do not call it; a caller that wants the check runs it on the batch before
// handing it to a driver.
func Validate(proposals []Proposal, n int) error {
	for _, p := range proposals {
		if len(p.S) != n {
			return ErrShapeMismatch
		}
		if !spin.Valid(p.S) {
			return ErrShapeMismatch
		}
	}
	return nil
}

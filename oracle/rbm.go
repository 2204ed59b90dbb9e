package oracle

import (
	"math"

	"isingmcmc/mcrand"
)

// ReferenceRBM is a minimal inference-only Bernoulli-Bernoulli Restricted
// Boltzmann Machine: fixed weights and biases, Gibbs sampling and free
// energy only. Spec §1 places RBM training out of scope; nothing in
// original_source's filtered files ships trained RBM weights either, so this
// exists purely as a concrete RBMOracle the exchange driver (spec §4.6) can
// be built and tested against. A production deployment would load weights
// trained elsewhere and plug them in here unchanged.
type ReferenceRBM struct {
	W  [][]float64 // nv x nh
	Bv []float64   // nv
	Bh []float64   // nh
	R  *mcrand.Source
}

// NewReferenceRBM builds a fixture RBM with the given weights and biases.
func NewReferenceRBM(w [][]float64, bv, bh []float64, seed int64) *ReferenceRBM {
	return &ReferenceRBM{W: w, Bv: bv, Bh: bh, R: mcrand.New(seed)}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// hiddenActivation returns p(h_j=1|v) for every hidden unit j.
func (m *ReferenceRBM) hiddenActivation(v []int8) []float64 {
	nh := len(m.Bh)
	p := make([]float64, nh)
	for j := 0; j < nh; j++ {
		act := m.Bh[j]
		for i, vi := range v {
			if vi != 0 {
				act += m.W[i][j]
			}
		}
		p[j] = sigmoid(act)
	}
	return p
}

// visibleActivation returns p(v_i=1|h) for every visible unit i.
func (m *ReferenceRBM) visibleActivation(h []int8) []float64 {
	nv := len(m.Bv)
	p := make([]float64, nv)
	for i := 0; i < nv; i++ {
		act := m.Bv[i]
		for j, hj := range h {
			if hj != 0 {
				act += m.W[i][j]
			}
		}
		p[i] = sigmoid(act)
	}
	return p
}

func (m *ReferenceRBM) sampleFrom(p []float64) []int8 {
	out := make([]int8, len(p))
	for i, pi := range p {
		if m.R.Uniform() < pi {
			out[i] = 1
		}
	}
	return out
}

// GibbsStep performs one block Gibbs transition h ~ p(h|v), v' ~ p(v|h),
// returning v' in {0,1} convention (spec §4.6).
func (m *ReferenceRBM) GibbsStep(v []int8) []int8 {
	h := m.sampleFrom(m.hiddenActivation(v))
	return m.sampleFrom(m.visibleActivation(h))
}

// FreeEnergy returns F(v) = -v·Bv - Σ_j log(1 + exp(Bh_j + (v·W)_j)), the
// standard Bernoulli-Bernoulli RBM free energy (spec §9's "RBM free energy"
// glossary entry), used by the exchange driver's swap acceptance ratio.
func (m *ReferenceRBM) FreeEnergy(v []int8) float64 {
	var vb float64
	for i, vi := range v {
		if vi != 0 {
			vb += m.Bv[i]
		}
	}
	nh := len(m.Bh)
	var hidden float64
	for j := 0; j < nh; j++ {
		act := m.Bh[j]
		for i, vi := range v {
			if vi != 0 {
				act += m.W[i][j]
			}
		}
		hidden += math.Log1p(math.Exp(act))
	}
	return -vb - hidden
}

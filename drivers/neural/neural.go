// Package neural implements the independent-proposal Metropolis chain
// (spec §4.3): proposals are drawn wholesale from an external learned
// density rather than built from single-spin flips.
package neural

import (
	"log"
	"math"

	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/mcrand"
	"isingmcmc/oracle"
)

// Config bundles a neural chain's run parameters. Logger, if non-nil,
// receives one line per skipped trial (spec §7: skips are counted but not
// fatal, logged at verbose level only); a nil Logger disables this logging
// without affecting SkipCount.
type Config struct {
	Beta      float64
	Steps     int
	SaveEvery int
	Seed      int64
	Logger    *log.Logger
}

// Record is one emitted (configuration, energy) pair, pre-downsampling.
type Record struct {
	S oracle.Proposal
	E float64
}

// Result is what Run returns on success.
type Result struct {
	Records        []Record
	AcceptanceRate float64
	SkipCount      int64
}

// Run steps a neural chain to completion per spec §4.3: src must yield at
// least Steps*SaveEvery proposals. Returns oracle.ErrExhausted if src runs
// dry before Steps*SaveEvery-1 trial proposals have been consumed — spec
// §4.7 treats oracle exhaustion as fatal — together with the records emitted
// up to that point. AcceptanceRate is accepted trials over evaluated trials;
// skipped (non-finite) trials count in neither.
//
// The reference implementation's own initialization loop re-reads index 0
// forever whenever that entry's lnq is non-finite, rather than advancing;
// this driver instead advances past non-finite entries until the first
// finite one, the behavior spec §4.3's prose actually describes. See
// DESIGN.md.
func Run(cfg Config, c *lattice.Couplings, src oracle.Source) (Result, error) {
	rng := mcrand.New(cfg.Seed)

	var accepted oracle.Proposal
	for {
		p, err := src.Next()
		if err != nil {
			return Result{}, err
		}
		if !math.IsInf(p.LnQ, 0) && !math.IsNaN(p.LnQ) {
			accepted = p
			break
		}
	}

	acceptedE := energy.Total(accepted.S, c)
	acceptedLnPi := energy.Boltzmann(acceptedE, cfg.Beta)

	totalTrials := cfg.Steps*cfg.SaveEvery - 1
	var records []Record
	var acceptedCount, proposedCount int
	var skipCount int64

	result := func() Result {
		var rate float64
		if proposedCount > 0 {
			rate = float64(acceptedCount) / float64(proposedCount)
		}
		return Result{
			Records:        downsample(records, cfg.SaveEvery),
			AcceptanceRate: rate,
			SkipCount:      skipCount,
		}
	}

	skip := func(reason string, i int) {
		skipCount++
		if cfg.Logger != nil {
			cfg.Logger.Printf("neural: skipping trial %d, non-finite %s", i, reason)
		}
	}

	for i := 0; i < totalTrials; i++ {
		trial, err := src.Next()
		if err != nil {
			return result(), err
		}

		if !finite(trial.LnQ) {
			skip("lnq", i)
			continue
		}
		trialE := energy.Total(trial.S, c)
		if !finite(trialE) {
			skip("energy", i)
			continue
		}
		trialLnPi := energy.Boltzmann(trialE, cfg.Beta)
		if !finite(trialLnPi) {
			skip("lnpi", i)
			continue
		}

		lnAlpha := accepted.LnQ - trial.LnQ + trialLnPi - acceptedLnPi
		if !finite(lnAlpha) {
			skip("lnalpha", i)
			continue
		}

		proposedCount++
		if lnAlpha >= 0.0 || math.Log(rng.Uniform()) < lnAlpha {
			accepted = trial
			acceptedE = trialE
			acceptedLnPi = trialLnPi
			acceptedCount++
		}

		records = append(records, Record{S: accepted, E: acceptedE})
	}

	return result(), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// downsample keeps every strideth record starting at index 0, spec §4.3's
// "down-sample by save_every, stride from the start".
func downsample(records []Record, stride int) []Record {
	if stride <= 1 {
		return records
	}
	out := make([]Record, 0, len(records)/stride+1)
	for i := 0; i < len(records); i += stride {
		out = append(out, records[i])
	}
	return out
}

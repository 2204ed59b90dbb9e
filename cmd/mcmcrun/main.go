// Mcmcrun is the thin CLI wrapper around the core engine: parse flags,
// load a run configuration, load the couplings table, dispatch to the
// selected chain variant, print the end-of-run summary. Everything it does
// is out of the core's scope by spec §1/§6; it exists only to exercise the
// packages underneath it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"isingmcmc/drivers/local"
	"isingmcmc/lattice"
	"isingmcmc/runconfig"
)

var (
	configPath *string
	nworkers   *int
)

func init() {
	configPath = flag.String("config", "./config.yaml", "path to the run configuration")
	nworkers = flag.Int("nworkers", 1, "number of parallel chains (ignored: this wrapper always runs a single chain)")
	flag.Parse()
}

func runApp(ctx context.Context) error {
	cfg, err := runconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("mcmcrun: loading config: %w", err)
	}

	// Drivers take no context, so the returned context is discarded and a
	// configured deadline does not interrupt a running chain; cancel only
	// releases the context's resources.
	_, cancel, err := cfg.WithDeadline(ctx)
	if err != nil {
		return fmt.Errorf("mcmcrun: deadline: %w", err)
	}
	defer cancel()

	var couplings *lattice.Couplings
	if cfg.CouplingsPath != "" {
		side, err := lattice.SideFromSpins(cfg.Spins)
		if err != nil {
			return fmt.Errorf("mcmcrun: %w", err)
		}
		couplings, err = lattice.LoadAdjacency(cfg.CouplingsPath, side)
		if err != nil {
			return fmt.Errorf("mcmcrun: loading couplings: %w", err)
		}
	} else {
		side, err := lattice.SideFromSpins(cfg.Spins)
		if err != nil {
			return fmt.Errorf("mcmcrun: %w", err)
		}
		couplings = lattice.NewTorus(side, 1.0)
	}

	switch cfg.Variant {
	case runconfig.VariantLocal:
		res := local.Run(local.Config{
			Spins:  cfg.Spins,
			Beta:   cfg.Beta,
			Steps:  cfg.Steps,
			Sweeps: cfg.Sweeps,
			BurnIn: cfg.BurnIn,
			Seed:   cfg.Seed,
		}, couplings)
		printLocalSummary(res)
	default:
		return fmt.Errorf("mcmcrun: variant %q is not wired into this CLI yet", cfg.Variant)
	}

	return nil
}

func printLocalSummary(res local.Result) {
	fmt.Printf("steps: %d\n", len(res.Records))
	fmt.Printf("acceptance rate: %.4f\n", res.AcceptanceRate)
	fmt.Printf("mean energy: %.4f\n", res.MeanEnergy)
	fmt.Printf("std energy: %.4f\n", res.StdEnergy)
	fmt.Printf("min energy: %.4f\n", res.MinEnergy)
}

func main() {
	if err := runApp(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

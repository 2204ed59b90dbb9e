// Package runconfig loads a run's parameters from a YAML file via viper's
// two-stage decode, the pattern the teacher's training config loader uses:
// an outer envelope selects a variant, and the inner definition block is
// re-marshalled and decoded into RunConfig, one struct shared by every
// variant.
package runconfig

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"isingmcmc/lattice"
)

// Variant names the chain family a run selects.
type Variant string

const (
	VariantLocal      Variant = "local"
	VariantNeural     Variant = "neural"
	VariantHybridStoc Variant = "hybrid-stochastic"
	VariantHybridSeq  Variant = "hybrid-sequential"
	VariantExchange   Variant = "exchange"
)

// outerConfig mirrors the teacher's OuterConfig: a kind selector plus an
// opaque inner definition block, decoded in a second pass once the variant
// is known.
type outerConfig struct {
	Variant Variant     `mapstructure:"variant"`
	Def     interface{} `mapstructure:"def"`
}

// RunConfig is every parameter spec §4.2-§4.6 name, generalized across all
// five chain variants; a given run only populates the fields its variant
// reads.
//
// No explicit yaml tags here, deliberately: viper lowercases every key of
// outer.Def on read, and yaml.Marshal re-emits those lowercased keys, so a
// camelCase tag like `yaml:"burnIn"` would never match the re-marshalled
// `burnin` key and the field would silently stay zero. Leaving the tag off
// lets yaml.v3 fall back to its default key, the field name lowercased, which
// is exactly the key viper's lowercasing produces. Mirrors the teacher's
// own TrainingConfig (learning.go), which uses mapstructure tags and no yaml
// tags for the same reason.
type RunConfig struct {
	Variant Variant

	Spins int
	Beta  float64
	Steps int
	Seed  int64

	Sweeps int
	BurnIn int

	SaveEvery int
	ProbLocal float64
	LenBlock  int

	CouplingsPath string
	ProposalsPath string
	OracleURL     string

	Verbose         bool
	DisableProgress bool
	Save            bool
	NumWorkers      int

	Deadline map[string]string
}

// Load reads and validates a YAML run configuration from path.
func Load(path string) (*RunConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := &RunConfig{Variant: outer.Variant}
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, err
	}
	cfg.Variant = outer.Variant

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces spec §7's configuration-error checks: invalid spins,
// non-positive beta, missing/unknown variant, non-positive steps.
func (cfg *RunConfig) Validate() error {
	if cfg.Variant == "" {
		return ErrMissingVariant
	}
	switch cfg.Variant {
	case VariantLocal, VariantNeural, VariantHybridStoc, VariantHybridSeq, VariantExchange:
	default:
		return ErrUnknownVariant
	}
	if _, err := lattice.SideFromSpins(cfg.Spins); err != nil {
		return ErrSpinsNotSquare
	}
	if cfg.Beta <= 0 {
		return ErrBetaNonPositive
	}
	if cfg.Steps <= 0 {
		return ErrStepsNonPositive
	}
	return nil
}

// WithDeadline returns a context bounded by the configured deadline
// duration, if one is set, mirroring the teacher's WithTrainingDeadline.
func (cfg *RunConfig) WithDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.Deadline["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	defaultCtx, cancel := context.WithCancel(ctx)
	return defaultCtx, cancel, nil
}

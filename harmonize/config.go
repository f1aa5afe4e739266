// Package harmonize selects usable causal instruments from a pair of
// schema-normalized GWAS summary-statistic tables and merges them into the
// single wide table that MR estimators consume.
package harmonize

// Config carries the pipeline thresholds. They are injected rather than
// hard-coded so tests and callers can override the conventional defaults.
type Config struct {
	// FStatMin is the weak-instrument cutoff: exposure rows with
	// BETA^2/SE^2 below it are removed.
	FStatMin float64

	// SentinelFStat is assigned to every exposure row when instrument
	// strength cannot be assessed because no SE is available. Known
	// weakening, reproduced for compatibility: "cannot compute" is treated
	// as "assume strong" rather than "exclude", and such rows are
	// indistinguishable from genuinely strong instruments downstream
	// except by this sentinel value.
	SentinelFStat float64

	// GenomeWideP is the genome-wide significance threshold used by the
	// optional association filters.
	GenomeWideP float64

	// MinEAF is the minor-allele-frequency floor used by the optional
	// association filters.
	MinEAF float64

	// KeepSignificantOnly enables the optional post-merge filter keeping
	// rows with exposure p < GenomeWideP and outcome p >= GenomeWideP.
	KeepSignificantOnly bool

	// ApplyEAFFloor enables the optional post-merge EAF_exp >= MinEAF filter.
	ApplyEAFFloor bool
}

// DefaultConfig returns the conventional thresholds: F >= 10 for instrument
// strength, 9999 as the assume-strong sentinel, 5e-8 genome-wide
// significance, and a 1% allele-frequency floor. The optional filters
// default to off.
func DefaultConfig() Config {
	return Config{
		FStatMin:      10,
		SentinelFStat: 9999,
		GenomeWideP:   5e-8,
		MinEAF:        0.01,
	}
}

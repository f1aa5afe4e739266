package harmonize

import (
	"log"
	"math"

	"github.com/mrcope/mrcope/sumstats"
)

// ScoreInstruments appends an F_stat column (BETA^2/SE^2) to the exposure
// table. When the table has no BETA or SE column even after derivation,
// strength cannot be assessed: every row receives the sentinel value and a
// warning is emitted. The sentinel return distinguishes that degraded path
// for callers and tests.
func ScoreInstruments(t *sumstats.Table, cfg Config) (sentinel bool, err error) {
	if !t.HasCol("BETA") || !t.HasCol("SE") {
		log.Printf("WARNING: BETA/SE not available in %s GWAS; skipping F-statistic filtering\n", t.Label)

		vals := make([]string, t.NRows())
		for i := range vals {
			vals[i] = sumstats.FormatFloat(cfg.SentinelFStat)
		}
		return true, t.AddCol("F_stat", vals)
	}

	vals := make([]string, t.NRows())
	for i := 0; i < t.NRows(); i++ {
		beta := t.Float(i, "BETA")
		se := t.Float(i, "SE")
		vals[i] = sumstats.FormatFloat((beta * beta) / (se * se))
	}

	return false, t.AddCol("F_stat", vals)
}

// DropWeakInstruments removes exposure rows whose F_stat falls below the
// configured cutoff, then re-filters the outcome table to the surviving
// exposure identifiers so the two tables stay aligned. The number of weak
// instruments removed is logged and returned.
func DropWeakInstruments(exp, out *sumstats.Table, cfg Config) int {
	weak := exp.Filter(func(i int) bool {
		f := exp.Float(i, "F_stat")
		// NaN F (e.g. SE parsed but zero beta over zero SE) is weak.
		return !math.IsNaN(f) && f >= cfg.FStatMin
	})
	log.Printf("Removing weak SNPs with F < %g: %d SNPs\n", cfg.FStatMin, weak)

	surviving := make(map[string]bool, exp.NRows())
	for i := 0; i < exp.NRows(); i++ {
		surviving[exp.Value(i, "SNP")] = true
	}
	FilterToSNPs(out, surviving)

	return weak
}

package harmonize

import (
	"log"

	"github.com/mrcope/mrcope/sumstats"
)

// Run executes instrument selection and the harmonized merge on two
// schema-resolved tables: common-SNP intersection, completeness and INDEL
// filtering, exposure-side F-statistic thresholding, then the inner join.
// Both tables are mutated in place; the returned table is the pipeline's
// output artifact.
func Run(exp, out *sumstats.Table, cfg Config) (*sumstats.Table, error) {
	common := CommonSNPs(exp, out)
	log.Printf("Shared SNPs between exposure & outcome: %d\n", len(common))

	FilterToSNPs(exp, common)
	FilterToSNPs(out, common)
	DropIncomplete(exp)
	DropIncomplete(out)
	log.Printf("Exposure after missing-value removal: (%d, %d)\n", exp.NRows(), len(exp.Cols))
	log.Printf("Outcome after missing-value removal: (%d, %d)\n", out.NRows(), len(out.Cols))

	if _, applied := FilterAlleles(exp); applied {
		log.Printf("Exposure after INDEL removal: (%d, %d)\n", exp.NRows(), len(exp.Cols))
	}
	if _, applied := FilterAlleles(out); applied {
		log.Printf("Outcome after INDEL removal: (%d, %d)\n", out.NRows(), len(out.Cols))
	}

	log.Println("Calculating F-statistics for exposure SNPs...")
	if _, err := ScoreInstruments(exp, cfg); err != nil {
		return nil, err
	}
	DropWeakInstruments(exp, out, cfg)
	log.Printf("Exposure after F-stat filtering: (%d, %d)\n", exp.NRows(), len(exp.Cols))
	log.Printf("Outcome after F-stat filtering: (%d, %d)\n", out.NRows(), len(out.Cols))

	merged, err := Merge(exp, out)
	if err != nil {
		return nil, err
	}

	if cfg.KeepSignificantOnly {
		removed := filterSignificance(merged, cfg)
		log.Printf("Removed %d SNPs outside significance window (exposure p < %g, outcome p >= %g)\n",
			removed, cfg.GenomeWideP, cfg.GenomeWideP)
	}
	if cfg.ApplyEAFFloor {
		removed := filterEAF(merged, cfg)
		log.Printf("Removed %d SNPs with EAF_exp < %g\n", removed, cfg.MinEAF)
	}

	log.Printf("Final merged dataset shape: (%d, %d)\n", merged.NRows(), len(merged.Cols))

	return merged, nil
}

// filterSignificance keeps instruments genome-wide significant for the
// exposure and null for the outcome, the guard against reverse-causal
// instruments used by the simulation pipeline.
func filterSignificance(merged *sumstats.Table, cfg Config) int {
	if !merged.HasCol("PVALUE_exp") || !merged.HasCol("PVALUE_out") {
		log.Println("WARNING: PVALUE_exp/PVALUE_out not present; skipping significance filtering")
		return 0
	}

	return merged.Filter(func(i int) bool {
		return merged.Float(i, "PVALUE_exp") < cfg.GenomeWideP &&
			merged.Float(i, "PVALUE_out") >= cfg.GenomeWideP
	})
}

func filterEAF(merged *sumstats.Table, cfg Config) int {
	if !merged.HasCol("EAF_exp") {
		log.Println("WARNING: EAF_exp not present; skipping EAF filtering")
		return 0
	}

	return merged.Filter(func(i int) bool {
		return merged.Float(i, "EAF_exp") >= cfg.MinEAF
	})
}

package harmonize

import (
	"log"
	"math"

	"github.com/mrcope/mrcope/sumstats"
)

// CommonSNPs returns the set of SNP identifiers present in both tables.
func CommonSNPs(a, b *sumstats.Table) map[string]bool {
	inA := make(map[string]bool, a.NRows())
	for i := 0; i < a.NRows(); i++ {
		inA[a.Value(i, "SNP")] = true
	}

	common := make(map[string]bool)
	for i := 0; i < b.NRows(); i++ {
		if snp := b.Value(i, "SNP"); inA[snp] {
			common[snp] = true
		}
	}

	return common
}

// FilterToSNPs keeps only rows whose SNP identifier is in the set and
// returns the number removed.
func FilterToSNPs(t *sumstats.Table, keep map[string]bool) int {
	return t.Filter(func(i int) bool { return keep[t.Value(i, "SNP")] })
}

// numericFields are the canonical fields whose cells must parse as numbers
// for a row to count as complete.
var numericFields = map[string]bool{"BP": true, "BETA": true, "SE": true, "PVALUE": true, "EAF": true}

// DropIncomplete removes rows with a missing value in any canonical column
// the table carries. Exclusion, not imputation, is the fail-safe default.
func DropIncomplete(t *sumstats.Table) int {
	var present []string
	for _, f := range sumstats.CanonicalFields {
		if t.HasCol(f) {
			present = append(present, f)
		}
	}

	return t.Filter(func(i int) bool {
		for _, f := range present {
			if sumstats.IsMissing(t.Value(i, f)) {
				return false
			}
			if numericFields[f] && math.IsNaN(t.Float(i, f)) {
				return false
			}
		}
		return true
	})
}

// IsSNPAllele reports whether an allele is a single nucleotide. Anything
// longer is an insertion/deletion.
func IsSNPAllele(a string) bool {
	switch a {
	case "A", "T", "C", "G":
		return true
	}

	return false
}

// FilterAlleles removes rows whose A1 or A2 is not a single A/T/C/G base,
// i.e. INDELs. Tables without allele columns are left untouched with a
// warning; strength filtering downstream still applies. Note that A1 == A2
// is not rejected here, matching the reference pipeline.
func FilterAlleles(t *sumstats.Table) (removed int, applied bool) {
	if !t.HasCol("A1") || !t.HasCol("A2") {
		log.Printf("WARNING: No A1/A2 columns found in %s GWAS; skipping INDEL filtering\n", t.Label)
		return 0, false
	}

	removed = t.Filter(func(i int) bool {
		return IsSNPAllele(t.Value(i, "A1")) && IsSNPAllele(t.Value(i, "A2"))
	})

	return removed, true
}

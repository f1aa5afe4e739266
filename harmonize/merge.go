package harmonize

import (
	"fmt"

	"github.com/mrcope/mrcope/sumstats"
)

// Merge inner-joins the exposure and outcome tables on SNP. Column names
// present in both tables are suffixed _exp and _out; SNP itself stays
// unsuffixed and leads the output. Duplicate identifiers would fan the join
// out, so they are rejected rather than silently tolerated; a merge that
// yields zero rows from nonempty inputs signals an upstream harmonization
// contract violation and is likewise fatal.
func Merge(exp, out *sumstats.Table) (*sumstats.Table, error) {
	for _, t := range []*sumstats.Table{exp, out} {
		if dup := firstDuplicateSNP(t); dup != "" {
			return nil, fmt.Errorf("%s GWAS contains duplicate SNP identifier %q; cannot merge", t.Label, dup)
		}
	}

	shared := make(map[string]bool)
	outCols := make(map[string]bool, len(out.Cols))
	for _, c := range out.Cols {
		outCols[c] = true
	}
	for _, c := range exp.Cols {
		if c != "SNP" && outCols[c] {
			shared[c] = true
		}
	}

	cols := []string{"SNP"}
	for _, c := range exp.Cols {
		if c == "SNP" {
			continue
		}
		if shared[c] {
			cols = append(cols, c+"_exp")
		} else {
			cols = append(cols, c)
		}
	}
	for _, c := range out.Cols {
		if c == "SNP" {
			continue
		}
		if shared[c] {
			cols = append(cols, c+"_out")
		} else {
			cols = append(cols, c)
		}
	}

	outBySNP := make(map[string]int, out.NRows())
	for i := 0; i < out.NRows(); i++ {
		outBySNP[out.Value(i, "SNP")] = i
	}

	var rows [][]string
	for i := 0; i < exp.NRows(); i++ {
		snp := exp.Value(i, "SNP")
		j, ok := outBySNP[snp]
		if !ok {
			continue
		}

		row := make([]string, 0, len(cols))
		row = append(row, snp)
		for _, c := range exp.Cols {
			if c != "SNP" {
				row = append(row, exp.Value(i, c))
			}
		}
		for _, c := range out.Cols {
			if c != "SNP" {
				row = append(row, out.Value(j, c))
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 && (exp.NRows() > 0 || out.NRows() > 0) {
		return nil, fmt.Errorf("harmonized merge produced zero rows from %d exposure and %d outcome rows", exp.NRows(), out.NRows())
	}

	merged := sumstats.NewTable("Harmonized", cols, rows)

	// GWAS-Catalog inputs reach the merge with their raw frequency column;
	// normalize the known alternate names.
	merged.Rename("riskFrequency_exp", "EAF_exp")
	merged.Rename("riskFrequency_out", "EAF_out")

	return merged, nil
}

func firstDuplicateSNP(t *sumstats.Table) string {
	seen := make(map[string]bool, t.NRows())
	for i := 0; i < t.NRows(); i++ {
		snp := t.Value(i, "SNP")
		if seen[snp] {
			return snp
		}
		seen[snp] = true
	}

	return ""
}

package harmonize

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mrcope/mrcope/sumstats"
)

func TestMergeSuffixesAndCardinality(t *testing.T) {
	exp := sumstats.NewTable("Exposure",
		[]string{"SNP", "BETA", "SE", "F_stat"},
		[][]string{
			{"rs1", "0.5", "0.05", "100"},
			{"rs2", "0.4", "0.04", "100"},
		},
	)
	out := sumstats.NewTable("Outcome",
		[]string{"SNP", "BETA", "SE"},
		[][]string{
			{"rs1", "0.01", "0.04"},
			{"rs3", "0.02", "0.04"},
		},
	)

	merged, err := Merge(exp, out)
	if err != nil {
		t.Fatal(err)
	}

	// Overlapping columns suffixed; exposure-only F_stat keeps its name.
	want := []string{"SNP", "BETA_exp", "SE_exp", "F_stat", "BETA_out", "SE_out"}
	if !reflect.DeepEqual(merged.Cols, want) {
		t.Fatalf("merged columns %v, want %v", merged.Cols, want)
	}

	// Cardinality: |shared identifiers|, with unique identifiers per table.
	if merged.NRows() != 1 {
		t.Fatalf("merged rows = %d, want 1", merged.NRows())
	}
	if merged.Value(0, "SNP") != "rs1" ||
		merged.Value(0, "BETA_exp") != "0.5" ||
		merged.Value(0, "BETA_out") != "0.01" {
		t.Errorf("unexpected merged row: %v", merged.Rows[0])
	}
}

func TestMergeRejectsDuplicateIdentifiers(t *testing.T) {
	exp := sumstats.NewTable("Exposure",
		[]string{"SNP", "BETA"},
		[][]string{{"rs1", "0.5"}, {"rs1", "0.6"}},
	)
	out := sumstats.NewTable("Outcome",
		[]string{"SNP", "BETA"},
		[][]string{{"rs1", "0.01"}},
	)

	_, err := Merge(exp, out)
	if err == nil {
		t.Fatal("expected duplicate-identifier error")
	}
	if !strings.Contains(err.Error(), "rs1") {
		t.Errorf("error does not name the duplicate: %v", err)
	}
}

func TestMergeZeroRowsIsFatal(t *testing.T) {
	exp := sumstats.NewTable("Exposure",
		[]string{"SNP", "BETA"},
		[][]string{{"rs1", "0.5"}},
	)
	out := sumstats.NewTable("Outcome",
		[]string{"SNP", "BETA"},
		[][]string{{"rs2", "0.01"}},
	)

	if _, err := Merge(exp, out); err == nil {
		t.Fatal("expected error when merge of nonempty inputs is empty")
	}
}

func TestMergeNormalizesFrequencyColumns(t *testing.T) {
	exp := sumstats.NewTable("Exposure",
		[]string{"SNP", "riskFrequency", "PVALUE"},
		[][]string{{"rs1", "0.3", "1e-9"}},
	)
	out := sumstats.NewTable("Outcome",
		[]string{"SNP", "riskFrequency", "PVALUE"},
		[][]string{{"rs1", "0.31", "0.5"}},
	)

	merged, err := Merge(exp, out)
	if err != nil {
		t.Fatal(err)
	}

	if !merged.HasCol("EAF_exp") || !merged.HasCol("EAF_out") {
		t.Fatalf("frequency columns not normalized: %v", merged.Cols)
	}
	if merged.Value(0, "EAF_exp") != "0.3" || merged.Value(0, "EAF_out") != "0.31" {
		t.Errorf("unexpected EAF values: %v", merged.Rows[0])
	}
}

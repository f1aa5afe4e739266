package sumstats

import (
	"math"
	"strings"
	"testing"
)

func TestFloatMissingAndUnparseable(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"SNP", "BETA"},
		[][]string{
			{"rs1", "0.5"},
			{"rs2", "NA"},
			{"rs3", ""},
			{"rs4", "not-a-number"},
		},
	)

	if v := table.Float(0, "BETA"); v != 0.5 {
		t.Errorf("Float parsed %g, want 0.5", v)
	}
	for i := 1; i < 4; i++ {
		if v := table.Float(i, "BETA"); !math.IsNaN(v) {
			t.Errorf("row %d: Float = %g, want NaN", i, v)
		}
	}
	if v := table.Float(0, "NOPE"); !math.IsNaN(v) {
		t.Errorf("missing column: Float = %g, want NaN", v)
	}
}

func TestHeaderTrimming(t *testing.T) {
	table := NewTable("Exposure", []string{" SNP ", "\tBP"}, nil)
	if !table.HasCol("SNP") || !table.HasCol("BP") {
		t.Errorf("headers not trimmed: %v", table.Cols)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"SNP"},
		[][]string{{"rs1"}, {"rs2"}, {"rs3"}, {"rs4"}},
	)

	removed := table.Filter(func(i int) bool { return i%2 == 0 })
	if removed != 2 {
		t.Errorf("removed %d rows, want 2", removed)
	}
	if table.Value(0, "SNP") != "rs1" || table.Value(1, "SNP") != "rs3" {
		t.Errorf("unexpected rows after filter: %v", table.Rows)
	}
}

func TestAddColReplacesExisting(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"SNP", "PVALUE"},
		[][]string{{"rs1", "0.5"}},
	)

	if err := table.AddCol("PVALUE", []string{"0.001"}); err != nil {
		t.Fatal(err)
	}
	if len(table.Cols) != 2 {
		t.Errorf("AddCol duplicated the column: %v", table.Cols)
	}
	if v := table.Value(0, "PVALUE"); v != "0.001" {
		t.Errorf("PVALUE = %q, want 0.001", v)
	}

	if err := table.AddCol("SE", []string{"1", "2"}); err == nil {
		t.Error("expected length-mismatch error")
	}
}

func TestWriteCSV(t *testing.T) {
	table := NewTable("Harmonized",
		[]string{"SNP", "BETA_exp"},
		[][]string{{"rs1", "0.5"}},
	)

	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		t.Fatal(err)
	}

	want := "SNP,BETA_exp\nrs1,0.5\n"
	if sb.String() != want {
		t.Errorf("WriteCSV = %q, want %q", sb.String(), want)
	}
}

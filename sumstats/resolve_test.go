package sumstats

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveRenamesAliases(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"rsid", "chromosome", "position", "effect_allele", "other_allele", "b", "stderr", "pval", "freq"},
		[][]string{{"rs1", "1", "100", "A", "G", "0.5", "0.05", "1e-10", "0.3"}},
	)

	if err := Resolve(table); err != nil {
		t.Fatal(err)
	}

	want := []string{"SNP", "CHR", "BP", "A1", "A2", "BETA", "SE", "PVALUE", "EAF"}
	if !reflect.DeepEqual(table.Cols, want) {
		t.Errorf("columns after resolve: %v, want %v", table.Cols, want)
	}
}

func TestResolveCanonicalIsNoOp(t *testing.T) {
	// Already-canonical tables resolve via the alias strategy alone; the
	// fallback parser must never be invoked on its own output.
	cols := []string{"SNP", "CHR", "BP", "A1", "A2", "BETA", "SE", "PVALUE"}
	rows := [][]string{{"rs1", "1", "100", "A", "G", "0.5", "0.05", "1e-10"}}
	table := NewTable("Outcome", cols, [][]string{append([]string{}, rows[0]...)})

	if err := Resolve(table); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Cols, cols) {
		t.Errorf("columns changed: %v", table.Cols)
	}
	if !reflect.DeepEqual(table.Rows, rows) {
		t.Errorf("rows changed: %v", table.Rows)
	}
}

func TestResolveComposite(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"riskAllele", "locations", "pValue", "riskFrequency"},
		[][]string{
			{"rs123-A", "1:12345", "0.001", "0.3"},
			// Embedded annotation in BP: first maximal digit run wins.
			{"rs456-T", "2:9876_fwd", "0.2", "0.4"},
			// Unparseable p-value: dropped.
			{"rs789-G", "3:111", "NA", "0.1"},
			// No position: dropped.
			{"rs999-C", "4:", "0.5", "0.2"},
		},
	)

	if err := Resolve(table); err != nil {
		t.Fatal(err)
	}

	if table.NRows() != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", table.NRows())
	}

	for _, v := range []struct {
		row  int
		col  string
		want string
	}{
		{0, "SNP", "rs123"},
		{0, "CHR", "1"},
		{0, "BP", "12345"},
		{0, "PVALUE", "0.001"},
		{1, "SNP", "rs456"},
		{1, "CHR", "2"},
		{1, "BP", "9876"},
	} {
		if got := table.Value(v.row, v.col); got != v.want {
			t.Errorf("row %d %s = %q, want %q", v.row, v.col, got, v.want)
		}
	}

	// The raw frequency column survives untouched for the post-merge rename.
	if !table.HasCol("riskFrequency") {
		t.Error("riskFrequency column should survive composite parsing")
	}
}

func TestResolveWaldPValue(t *testing.T) {
	table := NewTable("Exposure",
		[]string{"snp", "chr", "bp", "beta", "se"},
		[][]string{{"rs1", "1", "100", "0.5", "0.05"}},
	)

	if err := Resolve(table); err != nil {
		t.Fatal(err)
	}
	if !table.HasCol("PVALUE") {
		t.Fatal("PVALUE column not derived")
	}

	// z = 10: the two-sided p-value is astronomically small but positive.
	p := table.Float(0, "PVALUE")
	if !(p > 0 && p < 1e-20) {
		t.Errorf("derived p-value %g out of expected range", p)
	}

	// Mutual exclusion: PVALUE came from BETA/SE, so SE derivation must not fire.
	applied, err := DeriveSE(table)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("DeriveSE fired after p-value derivation")
	}
}

func TestResolveUnresolvableIsFatal(t *testing.T) {
	table := NewTable("Outcome",
		[]string{"foo", "bar"},
		[][]string{{"1", "2"}},
	)

	err := Resolve(table)
	if err == nil {
		t.Fatal("expected error for unresolvable table")
	}
	if !errors.Is(err, ErrUnresolvable) {
		t.Errorf("expected ErrUnresolvable, got %v", err)
	}
}

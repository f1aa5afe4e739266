package sumstats

import (
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvable means neither direct alias mapping nor any fallback
// layout could produce the required SNP/CHR/BP/PVALUE fields. This is a
// data-contract violation: the run cannot continue for this input.
var ErrUnresolvable = errors.New("required columns SNP, CHR, BP, PVALUE could not be resolved")

// A Strategy attempts to put a table into canonical form. Apply returns
// false when the table does not match the strategy's expected layout, in
// which case the next strategy in the chain is tried. Adding support for a
// new vendor layout means adding a Strategy value, not new control flow.
type Strategy interface {
	Name() string
	Apply(t *Table) (bool, error)
}

// DefaultStrategies returns the resolution chain in priority order: direct
// alias mapping, the GWAS-Catalog composite layout, then p-value derivation
// for tables that carry BETA/SE but no p-value column.
func DefaultStrategies() []Strategy {
	return []Strategy{
		AliasStrategy{Aliases: AutoColumnAliases},
		CompositeStrategy{},
		WaldPValueStrategy{Aliases: AutoColumnAliases},
	}
}

// Resolve normalizes a table's schema by trying strategies in order. It
// fails with ErrUnresolvable when no strategy leaves the table with all of
// SNP, CHR, BP, and PVALUE.
func Resolve(t *Table, strategies ...Strategy) error {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	for _, s := range strategies {
		ok, err := s.Apply(t)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", t.Label, s.Name(), err)
		}
		if ok && hasRequiredCols(t) {
			return nil
		}
	}

	return fmt.Errorf("%s GWAS: %w", t.Label, ErrUnresolvable)
}

func hasRequiredCols(t *Table) bool {
	for _, f := range RequiredFields {
		if !t.HasCol(f) {
			return false
		}
	}

	return true
}

// AliasStrategy maps arbitrary column headers onto the canonical schema via
// the static alias table. Columns are renamed only when all required fields
// resolve; otherwise the table is left untouched for the fallback layouts,
// which key on raw column names.
type AliasStrategy struct {
	Aliases []FieldAliases
}

func (s AliasStrategy) Name() string { return "auto column mapping" }

func (s AliasStrategy) Apply(t *Table) (bool, error) {
	log.Printf("Auto-mapping columns for %s GWAS...\n", t.Label)

	mapping := AutoMap(t, s.Aliases)
	for _, fa := range s.Aliases {
		if src, ok := mapping[fa.Field]; ok {
			log.Printf("  %s --> %s\n", fa.Field, src)
		} else {
			log.Printf("WARNING: Column for %s not found in %s GWAS\n", fa.Field, t.Label)
		}
	}

	if ok, _ := mapping.HasRequired(); !ok {
		return false, nil
	}

	for field, src := range mapping {
		t.Rename(src, field)
	}

	return true, nil
}

// CompositeStrategy extracts the required fields from the GWAS-Catalog
// export layout: a combined allele-and-identifier column ("rs123-A"), a
// combined chromosome:position locus column, and a raw p-value column.
// Rows that fail to parse are dropped, not repaired.
type CompositeStrategy struct {
	// Zero values fall back to the GWAS-Catalog column names below.
	AlleleCol string // default "riskAllele"
	LocusCol  string // default "locations"
	PValueCol string // default "pValue"
}

func (s CompositeStrategy) Name() string { return "composite field parsing" }

var digitRun = regexp.MustCompile(`[0-9]+`)

func (s CompositeStrategy) Apply(t *Table) (bool, error) {
	alleleCol, locusCol, pCol := s.AlleleCol, s.LocusCol, s.PValueCol
	if alleleCol == "" {
		alleleCol = "riskAllele"
	}
	if locusCol == "" {
		locusCol = "locations"
	}
	if pCol == "" {
		pCol = "pValue"
	}

	// The alias pass may already have renamed the p-value column; accept
	// either spelling so strategy order cannot starve this layout.
	if !t.HasCol(pCol) {
		pCol = "PVALUE"
	}
	if !t.HasCol(alleleCol) || !t.HasCol(locusCol) || !t.HasCol(pCol) {
		return false, nil
	}

	log.Printf("Parsing composite GWAS structure for %s...\n", t.Label)

	snps := make([]string, 0, t.NRows())
	chrs := make([]string, 0, t.NRows())
	bps := make([]string, 0, t.NRows())
	ps := make([]string, 0, t.NRows())
	valid := make([]bool, t.NRows())

	warnedDigits := false
	for i := 0; i < t.NRows(); i++ {
		snp := strings.SplitN(t.Value(i, alleleCol), "-", 2)[0]

		locus := strings.SplitN(t.Value(i, locusCol), ":", 2)
		var chr, rawBP string
		chr = locus[0]
		if len(locus) == 2 {
			rawBP = locus[1]
		}

		// Tolerate embedded non-numeric annotations (strand markers and the
		// like) by taking the first maximal run of digits.
		if strings.IndexFunc(rawBP, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			if !warnedDigits {
				log.Printf("%s: detected non-numeric BP values; extracting digits\n", t.Label)
				warnedDigits = true
			}
			rawBP = digitRun.FindString(rawBP)
		}

		bp, bpErr := strconv.Atoi(rawBP)
		p, pErr := strconv.ParseFloat(strings.TrimSpace(t.Value(i, pCol)), 64)

		ok := snp != "" && chr != "" && rawBP != "" && bpErr == nil &&
			!IsMissing(t.Value(i, pCol)) && pErr == nil && !math.IsNaN(p)
		valid[i] = ok
		if !ok {
			snps, chrs, bps, ps = append(snps, ""), append(chrs, ""), append(bps, ""), append(ps, "")
			continue
		}

		snps = append(snps, snp)
		chrs = append(chrs, chr)
		bps = append(bps, strconv.Itoa(bp))
		ps = append(ps, strconv.FormatFloat(p, 'g', -1, 64))
	}

	for _, c := range []struct {
		name string
		vals []string
	}{{"SNP", snps}, {"CHR", chrs}, {"BP", bps}, {"PVALUE", ps}} {
		if err := t.AddCol(c.name, c.vals); err != nil {
			return false, err
		}
	}

	if dropped := t.Filter(func(i int) bool { return valid[i] }); dropped > 0 {
		log.Printf("%s: dropped %d rows that failed composite parsing\n", t.Label, dropped)
	}

	return true, nil
}

// WaldPValueStrategy handles tables that carry effect sizes and standard
// errors but no p-value column at all: after alias renaming it derives
// PVALUE = 2*(1-Phi(|BETA/SE|)), the two-sided Wald test. It never fires
// when a p-value column exists, which keeps the two derivation directions
// (see DeriveSE) mutually exclusive.
type WaldPValueStrategy struct {
	Aliases []FieldAliases
}

func (s WaldPValueStrategy) Name() string { return "p-value derivation" }

func (s WaldPValueStrategy) Apply(t *Table) (bool, error) {
	mapping := AutoMap(t, s.Aliases)

	if _, ok := mapping["PVALUE"]; ok {
		return false, nil
	}
	for _, field := range []string{"SNP", "CHR", "BP", "BETA", "SE"} {
		if _, ok := mapping[field]; !ok {
			return false, nil
		}
	}

	for field, src := range mapping {
		t.Rename(src, field)
	}

	log.Printf("%s: no p-value column; deriving PVALUE from BETA and SE\n", t.Label)

	ps := make([]string, t.NRows())
	for i := 0; i < t.NRows(); i++ {
		ps[i] = FormatFloat(PValueFromWald(t.Float(i, "BETA"), t.Float(i, "SE")))
	}
	if err := t.AddCol("PVALUE", ps); err != nil {
		return false, err
	}

	return true, nil
}

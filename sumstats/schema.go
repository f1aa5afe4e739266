package sumstats

import "strings"

// Canonical field names, in schema order. A table is resolvable once SNP,
// CHR, BP, and PVALUE are all present, directly or via fallback parsing or
// derivation; the rest are best-effort.
var (
	CanonicalFields = []string{"SNP", "CHR", "BP", "A1", "A2", "BETA", "SE", "PVALUE", "EAF"}
	RequiredFields  = []string{"SNP", "CHR", "BP", "PVALUE"}
)

// FieldAliases pairs a canonical field with its accepted source-column
// spellings, in priority order. The first alias present in a table wins.
type FieldAliases struct {
	Field   string
	Aliases []string
}

// AutoColumnAliases is the static alias table used to normalize arbitrary
// GWAS column headers. All aliases are lowercase; matching is
// case-insensitive on trimmed headers. Each list leads with the canonical
// name itself so re-normalizing already-canonical output is a no-op.
var AutoColumnAliases = []FieldAliases{
	{Field: "SNP", Aliases: []string{"snp", "rsid", "marker", "rs_number", "rsids"}},
	{Field: "CHR", Aliases: []string{"chr", "chromosome", "chrom"}},
	{Field: "BP", Aliases: []string{"bp", "position", "pos"}},
	{Field: "A1", Aliases: []string{"a1", "effect_allele", "ea", "alt"}},
	{Field: "A2", Aliases: []string{"a2", "other_allele", "oa", "ref"}},
	{Field: "BETA", Aliases: []string{"beta", "effect_size", "b"}},
	{Field: "SE", Aliases: []string{"se", "stderr", "standard_error"}},
	{Field: "PVALUE", Aliases: []string{"pvalue", "pval", "p_value", "p"}},
	{Field: "EAF", Aliases: []string{"eaf", "effect_allele_freq", "freq", "riskfrequency", "maf"}},
}

// Mapping relates canonical field names to the source columns they were
// matched against. Fields with no matching alias are absent.
type Mapping map[string]string

// AutoMap scans each canonical field's alias list in priority order against
// the table's columns and records the first case-insensitive match. Ties
// are impossible: the scan short-circuits on the first hit.
func AutoMap(t *Table, aliases []FieldAliases) Mapping {
	lower := make(map[string]string, len(t.Cols))
	for i := len(t.Cols) - 1; i >= 0; i-- {
		// Reverse order so the leftmost of identically-lowercased columns wins.
		lower[strings.ToLower(t.Cols[i])] = t.Cols[i]
	}

	mapping := make(Mapping)
	for _, fa := range aliases {
		for _, alias := range fa.Aliases {
			if src, ok := lower[alias]; ok {
				mapping[fa.Field] = src
				break
			}
		}
	}

	return mapping
}

// HasRequired reports whether every required canonical field maps to a
// column, and which fields are missing.
func (m Mapping) HasRequired() (bool, []string) {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := m[field]; !ok {
			missing = append(missing, field)
		}
	}

	return len(missing) == 0, missing
}

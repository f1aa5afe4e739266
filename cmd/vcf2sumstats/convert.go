package main

import (
	"log"
	"math"
	"strconv"

	"github.com/carbocation/vcfgo"
	"gopkg.in/guregu/null.v3"
)

const bufferSize = 4096 * 8

// Record is one variant of the canonical summary-statistics schema. PVALUE
// and EAF are nullable: a study can omit them and the downstream pipeline
// derives or degrades accordingly.
type Record struct {
	SNP    string     `csv:"SNP"`
	CHR    string     `csv:"CHR"`
	BP     uint64     `csv:"BP"`
	A1     string     `csv:"A1"`
	A2     string     `csv:"A2"`
	BETA   float64    `csv:"BETA"`
	SE     float64    `csv:"SE"`
	PVALUE null.Float `csv:"PVALUE"`
	EAF    null.Float `csv:"EAF"`
}

// convert walks the VCF and extracts one Record per variant from the first
// sample column. Lines whose sample fields cannot be parsed are logged and
// skipped; they never abort the batch.
func convert(rdr *vcfgo.Reader, log10p bool) ([]*Record, error) {
	var records []*Record

	for {
		variant := rdr.Read()
		if variant == nil {
			break
		}

		if err := variant.Header.ParseSamples(variant); err != nil {
			log.Println("Sample parsing error:", err)
		}
		if len(variant.Samples) < 1 || variant.Samples[0] == nil {
			log.Printf("Skipping variant at %s:%d: no sample fields\n", variant.Chrom(), variant.Pos)
			continue
		}
		fields := variant.Samples[0].Fields

		es, esOK := parseField(fields, "ES")
		se, seOK := parseField(fields, "SE")
		if !esOK || !seOK {
			log.Printf("Skipping variant at %s:%d: missing ES/SE\n", variant.Chrom(), variant.Pos)
			continue
		}

		rec := &Record{
			SNP:  variant.Id(),
			CHR:  variant.Chrom(),
			BP:   variant.Pos,
			A1:   firstAlt(variant),
			A2:   variant.Ref(),
			BETA: es,
			SE:   se,
		}
		if rsid, ok := fields["ID"]; ok && rsid != "" && rsid != "." {
			// GWAS-VCF carries the study's rsID in the sample block; prefer
			// it over the site ID column.
			rec.SNP = rsid
		}

		if lp, ok := parseField(fields, "LP"); ok {
			p := lp
			if log10p {
				p = math.Pow(10, -lp)
			}
			if !math.IsNaN(p) && !math.IsInf(p, 0) {
				rec.PVALUE = null.FloatFrom(p)
			}
		}
		if af, ok := parseField(fields, "AF"); ok {
			rec.EAF = null.FloatFrom(af)
		}

		records = append(records, rec)
	}

	return records, rdr.Error()
}

func parseField(fields map[string]string, name string) (float64, bool) {
	v, ok := fields[name]
	if !ok || v == "" || v == "." {
		return 0, false
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func firstAlt(variant *vcfgo.Variant) string {
	if alts := variant.Alt(); len(alts) > 0 {
		return alts[0]
	}

	return ""
}

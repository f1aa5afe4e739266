// gwasinspect prints a QC summary of a GWAS summary-statistics table after
// schema normalization: shape, per-column missingness, describe-style
// statistics for the numeric canonical fields, and a -log10(p) histogram.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"
	"github.com/mrcope/mrcope/harmonize"
	"github.com/mrcope/mrcope/sumstats"
)

func main() {
	log.Println("gwasinspect")

	var path, label string
	var bins int
	flag.StringVar(&path, "gwas", "", "Path to a GWAS summary-statistics table (.csv, .tsv, or .txt; may be compressed).")
	flag.StringVar(&label, "label", "GWAS", "Label used in diagnostics, e.g. Exposure or Outcome.")
	flag.IntVar(&bins, "bins", 20, "Number of histogram bins for the -log10(p) distribution.")
	flag.Parse()

	if path == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(path, label, bins); err != nil {
		log.Fatalln(err)
	}
}

func run(path, label string, bins int) error {
	t, err := sumstats.ReadTable(path, label)
	if err != nil {
		return err
	}
	if err := sumstats.Resolve(t); err != nil {
		return err
	}
	if _, err := sumstats.DeriveSE(t); err != nil {
		return err
	}

	fmt.Printf("QC Summary: %s\n", label)
	fmt.Printf("Shape: (%d, %d)\n\n", t.NRows(), len(t.Cols))

	fmt.Println("Missing values per column:")
	for _, col := range t.Cols {
		missing := 0
		for i := 0; i < t.NRows(); i++ {
			if sumstats.IsMissing(t.Value(i, col)) {
				missing++
			}
		}
		fmt.Printf("  %-12s %d\n", col, missing)
	}
	fmt.Println()

	for _, col := range []string{"BP", "BETA", "SE", "PVALUE", "EAF", "F_stat"} {
		if !t.HasCol(col) {
			continue
		}
		if err := describe(t, col); err != nil {
			return err
		}
	}

	return plotNegLogP(t, bins)
}

// describe prints pandas-describe-style statistics for one numeric column.
func describe(t *sumstats.Table, col string) error {
	var values stats.Float64Data
	for i := 0; i < t.NRows(); i++ {
		if v := t.Float(i, col); !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		fmt.Printf("%s: no parseable values\n", col)
		return nil
	}

	mean, err := values.Mean()
	if err != nil {
		return err
	}
	median, err := values.Median()
	if err != nil {
		return err
	}
	sd, err := values.StandardDeviation()
	if err != nil {
		return err
	}
	min, err := values.Min()
	if err != nil {
		return err
	}
	max, err := values.Max()
	if err != nil {
		return err
	}

	fmt.Printf("%s: n=%d mean=%.6g median=%.6g sd=%.6g min=%.6g max=%.6g\n",
		col, len(values), mean, median, sd, min, max)

	return nil
}

// plotNegLogP draws a terminal histogram of -log10(PVALUE); the caption
// notes the genome-wide significance line a Manhattan plot would carry.
func plotNegLogP(t *sumstats.Table, bins int) error {
	if !t.HasCol("PVALUE") {
		return nil
	}

	var neglog []float64
	for i := 0; i < t.NRows(); i++ {
		p := t.Float(i, "PVALUE")
		if math.IsNaN(p) || p <= 0 {
			continue
		}
		neglog = append(neglog, -math.Log10(p))
	}
	if len(neglog) == 0 {
		return nil
	}

	sig := harmonize.DefaultConfig().GenomeWideP
	fmt.Printf("\n-log10(PVALUE) distribution (genome-wide significance at %.3g => %.2f):\n",
		sig, -math.Log10(sig))

	hist := histogram.Hist(bins, neglog)

	return histogram.Fprint(os.Stdout, hist, histogram.Linear(40))
}

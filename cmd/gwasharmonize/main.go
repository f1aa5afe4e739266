// gwasharmonize ingests exposure and outcome GWAS summary statistics with
// arbitrary column naming, normalizes them onto the canonical schema,
// filters to valid instruments, and writes the merged dataset consumed by
// downstream MR estimators.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrcope/mrcope/harmonize"
	"github.com/mrcope/mrcope/sumstats"
)

func main() {
	log.Println("gwasharmonize")
	fmt.Fprintln(os.Stderr, "GWAS Harmonisation & F-Statistic Filtering")

	cfg := harmonize.DefaultConfig()

	var exposurePath, outcomePath, outputPath string
	flag.StringVar(&exposurePath, "exposure", "", "Path to the exposure GWAS summary statistics (.csv, .tsv, or .txt; may be compressed).")
	flag.StringVar(&outcomePath, "outcome", "", "Path to the outcome GWAS summary statistics (.csv, .tsv, or .txt; may be compressed).")
	flag.StringVar(&outputPath, "out", "", "Path for the harmonized output CSV.")
	flag.Float64Var(&cfg.FStatMin, "fmin", cfg.FStatMin, "Weak-instrument F-statistic cutoff.")
	flag.Float64Var(&cfg.GenomeWideP, "sigp", cfg.GenomeWideP, "Genome-wide significance threshold for --significant.")
	flag.Float64Var(&cfg.MinEAF, "mineaf", cfg.MinEAF, "Allele-frequency floor for --eaffloor.")
	flag.BoolVar(&cfg.KeepSignificantOnly, "significant", false, "Keep only instruments with exposure p < sigp and outcome p >= sigp.")
	flag.BoolVar(&cfg.ApplyEAFFloor, "eaffloor", false, "Drop instruments with EAF_exp below mineaf.")
	flag.Parse()

	if exposurePath == "" || outcomePath == "" || outputPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(exposurePath, outcomePath, outputPath, cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(exposurePath, outcomePath, outputPath string, cfg harmonize.Config) error {
	exposure, err := sumstats.ReadTable(exposurePath, "Exposure")
	if err != nil {
		return err
	}
	outcome, err := sumstats.ReadTable(outcomePath, "Outcome")
	if err != nil {
		return err
	}

	for _, t := range []*sumstats.Table{exposure, outcome} {
		if err := sumstats.Resolve(t); err != nil {
			return err
		}
		if _, err := sumstats.DeriveSE(t); err != nil {
			return err
		}
	}

	merged, err := harmonize.Run(exposure, outcome, cfg)
	if err != nil {
		return err
	}

	if err := merged.WriteFile(outputPath); err != nil {
		return err
	}
	log.Printf("Filtered & harmonised GWAS saved to: %s\n", outputPath)

	return nil
}

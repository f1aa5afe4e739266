// vcf2sumstats converts a GWAS-VCF summary-statistics file (FORMAT fields
// ES:SE:LP:AF:ID, one study sample column) into the canonical delimited
// table that the harmonization pipeline consumes.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
	"github.com/gocarina/gocsv"
	"github.com/mrcope/mrcope"
)

func main() {
	log.Println("vcf2sumstats")

	var vcfPath, outPath string
	var log10p bool
	flag.StringVar(&vcfPath, "vcf", "", "Path to GWAS-VCF file with per-variant summary statistics. May be gzip-compressed.")
	flag.StringVar(&outPath, "out", "", "Path for the canonical summary-statistics CSV.")
	flag.BoolVar(&log10p, "log10p", true, "Interpret the LP sample field as -log10(p) rather than a raw p-value.")
	flag.Parse()

	if vcfPath == "" || outPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(vcfPath, outPath, log10p); err != nil {
		log.Fatalln(err)
	}
}

func run(vcfPath, outPath string, log10p bool) error {
	f, err := os.Open(vcfPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	rc, err := mrcope.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return pfx.Err(err)
	}
	defer rc.Close()

	rdr, err := vcfgo.NewReader(bufio.NewReaderSize(rc, bufferSize), false)
	if err != nil {
		return pfx.Err(err)
	}

	records, err := convert(rdr, log10p)
	if err != nil {
		return err
	}
	log.Printf("Converted %d variants\n", len(records))

	out, err := os.Create(outPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer out.Close()

	if err := gocsv.Marshal(&records, out); err != nil {
		return pfx.Err(err)
	}
	log.Printf("Summary statistics saved to: %s\n", outPath)

	return nil
}

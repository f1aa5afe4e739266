// simulategwas writes a paired set of synthetic exposure and outcome GWAS
// summary-statistic tables with a planted block of strong instruments, for
// exercising the harmonization pipeline end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type simRecord struct {
	SNP    string  `csv:"SNP"`
	CHR    int     `csv:"CHR"`
	BP     int     `csv:"BP"`
	A1     string  `csv:"A1"`
	A2     string  `csv:"A2"`
	EAF    float64 `csv:"EAF"`
	BETA   float64 `csv:"BETA"`
	SE     float64 `csv:"SE"`
	PVALUE float64 `csv:"PVALUE"`
}

var nucleotides = []string{"A", "T", "C", "G"}

func main() {
	log.Println("simulategwas")

	var exposureOut, outcomeOut string
	var nSNPs, nStrong int
	var seed uint64
	flag.StringVar(&exposureOut, "exposure_out", "", "Path for the simulated exposure GWAS CSV.")
	flag.StringVar(&outcomeOut, "outcome_out", "", "Path for the simulated outcome GWAS CSV.")
	flag.IntVar(&nSNPs, "n", 10000, "Number of simulated SNPs.")
	flag.IntVar(&nStrong, "strong", 8000, "Number of leading SNPs given genome-wide-significant exposure associations.")
	flag.Uint64Var(&seed, "seed", 42, "Random seed.")
	flag.Parse()

	if exposureOut == "" || outcomeOut == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}
	if nStrong > nSNPs {
		log.Fatalf("-strong (%d) cannot exceed -n (%d)\n", nStrong, nSNPs)
	}

	if err := run(exposureOut, outcomeOut, nSNPs, nStrong, seed); err != nil {
		log.Fatalln(err)
	}
}

func run(exposureOut, outcomeOut string, nSNPs, nStrong int, seed uint64) error {
	src := rand.NewSource(seed)
	rng := rand.New(src)

	strongBeta := distuv.Normal{Mu: 0.08, Sigma: 0.01, Src: src}
	nullBeta := distuv.Normal{Mu: 0.001, Sigma: 0.01, Src: src}
	se := distuv.Uniform{Min: 0.01, Max: 0.03, Src: src}
	eaf := distuv.Uniform{Min: 0.05, Max: 0.5, Src: src}
	strongP := distuv.Uniform{Min: 1e-12, Max: 5e-8, Src: src}
	outStrongP := distuv.Uniform{Min: 0.1, Max: 1.0, Src: src}

	exposure := make([]*simRecord, nSNPs)
	outcome := make([]*simRecord, nSNPs)

	for i := 0; i < nSNPs; i++ {
		a1 := nucleotides[rng.Intn(len(nucleotides))]
		a2 := a1
		for a2 == a1 {
			a2 = nucleotides[rng.Intn(len(nucleotides))]
		}

		shared := simRecord{
			SNP: fmt.Sprintf("rs%d", 1000000+i),
			CHR: 1 + rng.Intn(22),
			BP:  1000000 + rng.Intn(49000000),
			A1:  a1,
			A2:  a2,
			EAF: eaf.Rand(),
		}

		exp := shared
		out := shared

		if i < nStrong {
			exp.BETA = strongBeta.Rand()
			exp.PVALUE = strongP.Rand()
			out.PVALUE = outStrongP.Rand()
		} else {
			exp.BETA = nullBeta.Rand()
			exp.PVALUE = 1
			out.PVALUE = 1
		}
		exp.SE = se.Rand()

		out.BETA = nullBeta.Rand()
		out.SE = se.Rand()

		exposure[i] = &exp
		outcome[i] = &out
	}

	if err := writeCSV(exposureOut, exposure); err != nil {
		return err
	}
	if err := writeCSV(outcomeOut, outcome); err != nil {
		return err
	}

	log.Printf("Simulated %d SNPs (%d genome-wide significant in exposure)\n", nSNPs, nStrong)
	log.Printf("Exposure saved to: %s\n", exposureOut)
	log.Printf("Outcome saved to: %s\n", outcomeOut)

	return nil
}

func writeCSV(path string, records []*simRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&records, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

package sumstats

import (
	"log"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// PValueFromWald computes the two-sided p-value of a Wald test,
// 2*(1-Phi(|beta/se|)). Undefined inputs (se of zero, non-finite z) come
// back as NaN so the row falls to the completeness filter.
func PValueFromWald(beta, se float64) float64 {
	z := beta / se
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return math.NaN()
	}

	// CDF of -|z| is 1-Phi(|z|) without the cancellation at large z.
	return 2 * stdNormal.CDF(-math.Abs(z))
}

// SEFromPValue inverts the two-sided Wald test: |beta / Phi^-1(p/2)|.
// Degenerate p-values (p=1 puts the quantile at zero) yield NaN. p=0 is
// kept as an SE of zero, matching the reference behavior of the pipeline
// this reproduces.
func SEFromPValue(beta, p float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}

	se := math.Abs(beta / stdNormal.Quantile(p/2))
	if math.IsInf(se, 0) {
		return math.NaN()
	}

	return se
}

// DeriveSE fills in a standard-error column when the table has BETA and
// PVALUE but no SE, the mirror image of WaldPValueStrategy. It reports
// whether a derivation happened. Per-row failures become missing cells,
// never errors.
func DeriveSE(t *Table) (bool, error) {
	if t.HasCol("SE") || !t.HasCol("BETA") || !t.HasCol("PVALUE") {
		return false, nil
	}

	log.Printf("%s: inferring SE from BETA and PVALUE...\n", t.Label)

	ses := make([]string, t.NRows())
	for i := 0; i < t.NRows(); i++ {
		ses[i] = FormatFloat(SEFromPValue(t.Float(i, "BETA"), t.Float(i, "PVALUE")))
	}

	return true, t.AddCol("SE", ses)
}

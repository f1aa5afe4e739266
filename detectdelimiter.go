// Package mrcope provides shared helpers for the MR-CoPe GWAS
// summary-statistics tools: delimiter and compression sniffing for the
// loosely specified text tables the pipeline consumes.
package mrcope

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// DelimiterForPath chooses a field delimiter based on the file extension:
// tab for .tsv and .txt, comma for .csv. Compression extensions (.gz etc)
// are stripped first. The second return is false when the extension is not
// recognized, in which case the caller should sniff the content instead.
func DelimiterForPath(path string) (rune, bool) {
	p := strings.ToLower(path)
	for _, compressed := range []string{".gz", ".zip", ".xz", ".bz2", ".z"} {
		p = strings.TrimSuffix(p, compressed)
	}

	switch filepath.Ext(p) {
	case ".tsv", ".txt":
		return '\t', true
	case ".csv":
		return ',', true
	}

	return ',', false
}

// DetermineDelimiter returns the single most likely rune that would delimit
// the values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

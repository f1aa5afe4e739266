package sumstats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/mrcope/mrcope"
)

// ReadTable loads a delimited summary-statistics table. The delimiter comes
// from the file extension (.tsv/.txt tab, .csv comma); unrecognized
// extensions fall back to content-based detection. Compressed inputs
// (gzip, zip, xz, zlib, bzip2) are decompressed transparently.
func ReadTable(path, label string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s file not found at %s: %w", label, path, err)
	}
	defer f.Close()

	rc, err := mrcope.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	// Whole-table reads are fine here: the pipeline is batch-oriented and
	// operates on full in-memory tables anyway.
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim, ok := mrcope.DelimiterForPath(path)
	if !ok {
		delim = mrcope.DetermineDelimiter(bytes.NewReader(raw))
		log.Printf("%s: unrecognized extension for %s; detected delimiter %q\n", label, path, delim)
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", label, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s (%s): no header row", label, path)
	}

	t := NewTable(label, records[0], records[1:])
	t.Path = path
	log.Printf("Loaded %s GWAS %s | Shape: (%d, %d)\n", label, path, t.NRows(), len(t.Cols))

	return t, nil
}

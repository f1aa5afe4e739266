package mrcope

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression identifies the compression wrapper (if any) around an input
// table. Public GWAS summary statistics are commonly distributed gzipped,
// but zip, xz, zlib, and bzip2 all show up in the wild.
type Compression byte

const (
	CompressionInvalid Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZlib
	CompressionBZip2
)

var compressionSigs = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZlib:  {0x1f, 0x9d},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// DetectCompression sniffs the leading magic bytes of a stream against the
// known compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectCompression(r io.Reader) (Compression, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return CompressionInvalid, err
	}

Outer:
	for compression, sig := range compressionSigs {
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return compression, nil
	}

	return CompressionNone, nil
}

// MaybeDecompressReadCloserFromFile wraps an open file in the appropriate
// decompressor based on its magic bytes. Streams with no recognized
// signature are assumed to be uncompressed and returned as-is.
func MaybeDecompressReadCloserFromFile(f *os.File) (io.ReadCloser, error) {
	compression, err := DetectCompression(f)
	if err != nil {
		return nil, err
	}

	// Reset your original reader so the decompressor sees the magic bytes
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	switch compression {
	case CompressionGzip:
		return gzip.NewReader(f)
	case CompressionZip:
		return &readCloserFaker{zipstream.NewReader(f)}, nil
	case CompressionBZip2:
		return &readCloserFaker{bzip2.NewReader(f)}, nil
	case CompressionXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case CompressionZlib:
		return zlib.NewReader(f)
	}

	return f, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}

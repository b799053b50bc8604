package snp

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression indicates how (and whether) a SNP file is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGzip
	CompressionZStandard
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "CompressionDisabled"
	case CompressionGzip:
		return "CompressionGzip"
	case CompressionZStandard:
		return "CompressionZStandard"
	case CompressionXZ:
		return "CompressionXZ"

	default:
		return "Illegal selection"
	}
}

// CompressionForPath picks the compression from the file extension.
func CompressionForPath(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(path, ".zst"):
		return CompressionZStandard
	case strings.HasSuffix(path, ".xz"):
		return CompressionXZ
	}

	return CompressionDisabled
}

// chainReadCloser reads from the outermost decompressor and closes every
// layer, innermost last.
type chainReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainReadCloser) Close() error {
	return closeAll(c.closers)
}

type chainWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (c *chainWriteCloser) Close() error {
	return closeAll(c.closers)
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// decompressReader wraps rc so that reads are decompressed. Closing the
// result also closes rc. On error rc is left open.
func decompressReader(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionDisabled:
		return rc, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainReadCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case CompressionZStandard:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainReadCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), rc}}, nil
	case CompressionXZ:
		xr, err := xz.NewReader(rc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainReadCloser{Reader: xr, closers: []io.Closer{rc}}, nil
	}

	return nil, pfx.Err(fmt.Errorf("Compression choice %s is not supported", c))
}

// compressWriter wraps wc so that writes are compressed. Closing the result
// flushes the compressor and then closes wc. On error wc is left open.
func compressWriter(wc io.WriteCloser, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionDisabled:
		return wc, nil
	case CompressionGzip:
		gz := gzip.NewWriter(wc)
		return &chainWriteCloser{Writer: gz, closers: []io.Closer{gz, wc}}, nil
	case CompressionZStandard:
		enc, err := zstd.NewWriter(wc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainWriteCloser{Writer: enc, closers: []io.Closer{enc, wc}}, nil
	case CompressionXZ:
		xw, err := xz.NewWriter(wc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &chainWriteCloser{Writer: xw, closers: []io.Closer{xw, wc}}, nil
	}

	return nil, pfx.Err(fmt.Errorf("Compression choice %s is not supported", c))
}

package snp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// StdioPath selects standard input or standard output instead of a file.
const StdioPath = "-"

const gcsPrefix = "gs://"

// Replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// openSource opens path for reading and layers decompression on top. Standard
// input comes back wrapped so that closing it is a no-op.
func openSource(ctx context.Context, path string) (io.ReadCloser, error) {
	var rc io.ReadCloser

	switch {
	case path == StdioPath:
		return nopReadCloser{stdin}, nil
	case strings.HasPrefix(path, gcsPrefix):
		obj, err := openGCSReader(ctx, path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = obj
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = f
	}

	out, err := decompressReader(rc, CompressionForPath(path))
	if err != nil {
		rc.Close()
		return nil, pfx.Err(err)
	}

	return out, nil
}

// createSink is the write-side counterpart of openSource.
func createSink(ctx context.Context, path string) (io.WriteCloser, error) {
	var wc io.WriteCloser

	switch {
	case path == StdioPath:
		return nopWriteCloser{stdout}, nil
	case strings.HasPrefix(path, gcsPrefix):
		obj, err := openGCSWriter(ctx, path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		wc = obj
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		wc = f
	}

	out, err := compressWriter(wc, CompressionForPath(path))
	if err != nil {
		wc.Close()
		return nil, pfx.Err(err)
	}

	return out, nil
}

// splitGCSPath turns gs://bucket/path/to/object into its bucket and object.
func splitGCSPath(path string) (bucket, object string, err error) {
	bucket, object, found := strings.Cut(strings.TrimPrefix(path, gcsPrefix), "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("%s is not of the form gs://bucket/object", path)
	}
	return bucket, object, nil
}

// The storage client lives exactly as long as the object stream it opened.
func openGCSReader(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, err := splitGCSPath(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, pfx.Err(err)
	}

	return &chainReadCloser{Reader: r, closers: []io.Closer{r, closerFunc(client.Close)}}, nil
}

func openGCSWriter(ctx context.Context, path string) (io.WriteCloser, error) {
	bucket, object, err := splitGCSPath(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)

	return &chainWriteCloser{Writer: w, closers: []io.Closer{w, closerFunc(client.Close)}}, nil
}

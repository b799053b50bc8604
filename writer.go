package snp

import (
	"bufio"
	"context"
	"io"
	"sort"

	"github.com/carbocation/pfx"
)

// WriteHeader writes the column header line. WriteRecords never does this on
// its own.
func WriteHeader(w io.Writer, hasChromosome bool) error {
	if _, err := io.WriteString(w, FormatHeader(hasChromosome)+"\n"); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// WriteRecords writes one line per record in ascending order of position.
// Records sharing a position keep their relative order. The records slice is
// not modified and w is not closed.
func WriteRecords[R Record](w io.Writer, records []R) error {
	sorted := make([]R, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position() < sorted[j].Position()
	})

	bw := bufio.NewWriter(w)
	for _, r := range sorted {
		if _, err := bw.WriteString(FormatRecord(r) + "\n"); err != nil {
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile writes records to path, which may be "-" for standard output, a
// gs://bucket/object URL, or a local file. Output is compressed according to
// the path's extension. If header is set, a header line is written first; it
// includes the chromosome column when any record has a chromosome.
func WriteFile(ctx context.Context, path string, records []ExtendedVariant, header bool) (err error) {
	sink, err := createSink(ctx, path)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = pfx.Err(cerr)
		}
	}()

	if header {
		if err := WriteHeader(sink, anyChromosome(records)); err != nil {
			return err
		}
	}

	return WriteRecords(sink, records)
}

func anyChromosome(records []ExtendedVariant) bool {
	for _, r := range records {
		if r.Chromosome() != "" {
			return true
		}
	}
	return false
}

package snp

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Lines longer than this abort the parse with bufio.ErrTooLong.
const maxLineLength = 16 * 1024 * 1024

// Reader reads ExtendedVariants one line at a time from a SNP file.
type Reader struct {
	LinesSeen    int
	VariantsSeen int

	source  string
	scanner *bufio.Scanner
	err     error
}

// NewReader reads from r, which the Reader never closes. source only labels
// error messages.
func NewReader(r io.Reader, source string) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	return &Reader{
		source:  source,
		scanner: scanner,
	}
}

func (r *Reader) Error() error {
	return r.err
}

// Read returns the next variant, or nil once the input is exhausted or an
// error has occurred; check Error to tell the two apart. Empty lines, comments
// and header lines are skipped. Both "\n" and "\r\n" end a line, so a blank
// line from a CRLF file counts as empty.
func (r *Reader) Read() *ExtendedVariant {
	if r.err != nil {
		return nil
	}

	for r.scanner.Scan() {
		r.LinesSeen++
		line := r.scanner.Text()
		if skipLine(line) {
			continue
		}

		v, err := r.parseLine(line)
		if err != nil {
			r.err = err
			return nil
		}

		r.VariantsSeen++
		return &v
	}

	if err := r.scanner.Err(); err != nil {
		r.err = pfx.Err(err)
	}

	return nil
}

func skipLine(line string) bool {
	return len(line) == 0 ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "Pos") ||
		strings.HasPrefix(line, "Chrom")
}

// parseLine does not mutate the Reader.
func (r *Reader) parseLine(line string) (ExtendedVariant, error) {
	var chromosome string
	fields := strings.Fields(line)
	switch len(fields) {
	case 5:
		chromosome = fields[0]
		fields = fields[1:]
	case 4:
	default:
		return ExtendedVariant{}, &MalformedLineError{Source: r.source, LineNumber: r.LinesSeen, Line: line}
	}

	position, err := strconv.Atoi(fields[0])
	if err != nil {
		return ExtendedVariant{}, pfx.Err(err)
	}

	frequency, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return ExtendedVariant{}, pfx.Err(err)
	}

	reference, observed := parseVariantSpec(fields[1])

	// Files are 1-based, positions are 0-based.
	return NewExtendedVariant(chromosome, position-1, reference, observed, frequency, parseInfo(fields[3]))
}

// Parse reads every variant from r, in file order. r is not closed. The first
// malformed line, invalid variant or unparseable number aborts the parse.
func Parse(r io.Reader, source string) ([]ExtendedVariant, error) {
	out := make([]ExtendedVariant, 0)

	rd := NewReader(r, source)
	for v := rd.Read(); v != nil; v = rd.Read() {
		out = append(out, *v)
	}
	if err := rd.Error(); err != nil {
		return nil, err
	}

	return out, nil
}

// ParseFile is ParseFileContext with a background context. Parsing takes no
// annotation key; look up the conventional one with DefaultAnnotationKey or
// ExtendedVariant.DefaultAnnotation.
func ParseFile(path string) ([]ExtendedVariant, error) {
	return ParseFileContext(context.Background(), path)
}

// ParseFileContext parses the SNP file at path. "-" reads standard input,
// which is left open; gs://bucket/object reads from Google Cloud Storage;
// anything else is a local file. Compressed input is detected from the
// extension. Whatever is opened here is closed before returning.
func ParseFileContext(ctx context.Context, path string) ([]ExtendedVariant, error) {
	src, err := openSource(ctx, path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer src.Close()

	return Parse(src, path)
}

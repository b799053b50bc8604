// Package snp models single-nucleotide variant records and reads and writes
// them in a simple whitespace-delimited text format, one variant per line,
// sorted by position.
package snp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// DefaultAnnotationKey names the annotation that most callers treat as the
// primary statistic of a call.
const DefaultAnnotationKey = "pvalue"

// Variant is a single position together with its reference (wildtype) and
// observed bases. Position is zero-based; it is displayed one-based. An empty
// chromosome means the variant is not chromosome-qualified.
//
// Variant is comparable: == is identity, and a Variant can be used directly
// as a map key.
type Variant struct {
	chromosome string
	position   int
	reference  string
	observed   string
}

// NewVariant returns a Variant, or an InvalidVariantError if reference and
// observed are identical or position is negative.
func NewVariant(chromosome string, position int, reference, observed string) (Variant, error) {
	if reference == observed {
		return Variant{}, &InvalidVariantError{Field: "observed", Value: observed, Reason: "must differ from the reference base"}
	}
	if position < 0 {
		return Variant{}, &InvalidVariantError{Field: "position", Value: strconv.Itoa(position), Reason: "must not be negative"}
	}

	return Variant{
		chromosome: chromosome,
		position:   position,
		reference:  reference,
		observed:   observed,
	}, nil
}

func (v Variant) Chromosome() string { return v.chromosome }
func (v Variant) Position() int      { return v.position }
func (v Variant) Reference() string  { return v.reference }
func (v Variant) Observed() string   { return v.observed }

// Equal reports whether two variants share position, bases and chromosome.
func (v Variant) Equal(other Variant) bool {
	return v == other
}

// Hash returns a stable 64-bit digest of the variant's identity. Equal
// variants always hash equal.
func (v Variant) Hash() uint64 {
	sum := blake3.Sum256([]byte(fmt.Sprintf("%s %d %s>%s", v.chromosome, v.position+1, v.reference, v.observed)))
	return binary.LittleEndian.Uint64(sum[:8])
}

func (v Variant) String() string {
	out := fmt.Sprintf("%d %s>%s", v.position+1, v.reference, v.observed)
	if v.chromosome != "" {
		out = v.chromosome + " " + out
	}
	return out
}

// ExtendedVariant adds an observed-allele frequency and free-form annotations
// to a Variant. Neither takes part in equality or hashing: the same call can
// carry different metadata across runs.
type ExtendedVariant struct {
	Variant

	frequency   float64
	annotations map[string]string
}

// NewExtendedVariant validates the base variant and the annotation keys. Keys
// may not contain ';' or ':' since those delimit the serialized form. The
// annotations are copied.
func NewExtendedVariant(chromosome string, position int, reference, observed string, frequency float64, annotations map[string]string) (ExtendedVariant, error) {
	v, err := NewVariant(chromosome, position, reference, observed)
	if err != nil {
		return ExtendedVariant{}, err
	}

	ann := make(map[string]string, len(annotations))
	for key, value := range annotations {
		if strings.ContainsAny(key, infoPairSeparator+infoKeyValueSeparator) {
			return ExtendedVariant{}, &InvalidVariantError{Field: "annotation key", Value: key, Reason: "must not contain ';' or ':'"}
		}
		ann[key] = value
	}

	return ExtendedVariant{
		Variant:     v,
		frequency:   frequency,
		annotations: ann,
	}, nil
}

func (e ExtendedVariant) Frequency() float64 { return e.frequency }

// Annotations returns a copy of the annotation map.
func (e ExtendedVariant) Annotations() map[string]string {
	out := make(map[string]string, len(e.annotations))
	for k, v := range e.annotations {
		out[k] = v
	}
	return out
}

func (e ExtendedVariant) Annotation(key string) (string, bool) {
	value, ok := e.annotations[key]
	return value, ok
}

// DefaultAnnotation returns the annotation stored under DefaultAnnotationKey.
func (e ExtendedVariant) DefaultAnnotation() (string, bool) {
	return e.Annotation(DefaultAnnotationKey)
}

// Identifier is the base variant display form, without frequency or
// annotations, and so maps equal variants to the same string.
func (e ExtendedVariant) Identifier() string {
	return e.Variant.String()
}

func (e ExtendedVariant) String() string {
	out := e.Variant.String() + " " + FormatFrequency(e.frequency)
	if len(e.annotations) > 0 {
		out += " " + formatInfo(e.annotations)
	}
	return out
}

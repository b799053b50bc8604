package snp

import (
	"sort"
	"strconv"
	"strings"
)

const (
	headerWithChromosome    = "Chrom Pos SNP Freq Info"
	headerWithoutChromosome = "Pos SNP Freq Info"

	infoPairSeparator     = ";"
	infoKeyValueSeparator = ":"
	variantSeparator      = ">"

	// Legacy files have no reference base in the variant field.
	unknownReference = "N"

	// Annotation key used when the info field cannot be split into pairs.
	genericInfoKey = "generic-info"
)

// Record is anything that can be written as one line of a SNP file. Both
// Variant and ExtendedVariant satisfy it.
type Record interface {
	Position() int
	String() string
}

// FormatHeader returns the optional column header line, without a newline.
func FormatHeader(hasChromosome bool) string {
	if hasChromosome {
		return headerWithChromosome
	}
	return headerWithoutChromosome
}

// FormatRecord renders one record as a SNP file line, without a newline.
func FormatRecord(r Record) string {
	return r.String()
}

// FormatFrequency renders a frequency like C's %g: six significant digits,
// exponent form below 1e-4 or from 1e6 on, and no trailing zeros.
func FormatFrequency(f float64) string {
	s := strconv.FormatFloat(f, 'g', 6, 64)

	mantissa, exponent := s, ""
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mantissa, exponent = s[:i], s[i:]
	}
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}

	return mantissa + exponent
}

// formatInfo serializes annotations as key:value pairs joined by ';', sorted
// by key.
func formatInfo(annotations map[string]string) string {
	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+infoKeyValueSeparator+annotations[k])
	}

	return strings.Join(pairs, infoPairSeparator)
}

// parseInfo splits an info field into annotations. Every ';'-separated
// segment must contain exactly one ':'. Anything else is kept verbatim under
// the generic-info key; parseInfo never fails.
func parseInfo(info string) map[string]string {
	annotations := make(map[string]string)
	for _, segment := range strings.Split(info, infoPairSeparator) {
		kv := strings.Split(segment, infoKeyValueSeparator)
		if len(kv) != 2 {
			return map[string]string{genericInfoKey: info}
		}
		annotations[kv[0]] = kv[1]
	}

	return annotations
}

// parseVariantSpec splits "C>T" into its bases. Without a '>' the whole token
// is the observed base and the reference is unknown.
func parseVariantSpec(spec string) (reference, observed string) {
	if ref, obs, found := strings.Cut(spec, variantSeparator); found {
		return ref, obs
	}
	return unknownReference, spec
}

package snp

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteRecordsSortsByPosition(t *testing.T) {
	var records []Variant
	for _, pos := range []int{5, 1, 3} {
		v, err := NewVariant("", pos, "A", "C")
		if err != nil {
			t.Fatal(err)
		}
		records = append(records, v)
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatal(err)
	}

	want := "2 A>C\n4 A>C\n6 A>C\n"
	if buf.String() != want {
		t.Errorf("Got %q, expected %q", buf.String(), want)
	}

	if records[0].Position() != 5 || records[1].Position() != 1 || records[2].Position() != 3 {
		t.Errorf("Expected the input slice to keep its order")
	}
}

func TestWriteRecordsIsStable(t *testing.T) {
	records := []ExtendedVariant{
		mustExtended(t, "", 9, "A", "T", 0.1, map[string]string{"pvalue": "1"}),
		mustExtended(t, "", 2, "A", "G", 0.2, map[string]string{"pvalue": "2"}),
		mustExtended(t, "", 9, "A", "C", 0.3, map[string]string{"pvalue": "3"}),
		mustExtended(t, "", 2, "A", "T", 0.4, map[string]string{"pvalue": "4"}),
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"3 A>G 0.2 pvalue:2",
		"3 A>T 0.4 pvalue:4",
		"10 A>T 0.1 pvalue:1",
		"10 A>C 0.3 pvalue:3",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WriteRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, []ExtendedVariant{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Got %q, expected no output", buf.String())
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, true); err != nil {
		t.Fatal(err)
	}
	if err := WriteHeader(&buf, false); err != nil {
		t.Fatal(err)
	}

	want := "Chrom Pos SNP Freq Info\nPos SNP Freq Info\n"
	if buf.String() != want {
		t.Errorf("Got %q, expected %q", buf.String(), want)
	}
}

func TestWriteFileToStdout(t *testing.T) {
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	records := []ExtendedVariant{
		mustExtended(t, "chr1", 20, "G", "A", 0.5, map[string]string{"pvalue": "0.1"}),
		mustExtended(t, "", 10, "C", "T", 0.5, map[string]string{"pvalue": "0.2"}),
	}
	if err := WriteFile(context.Background(), StdioPath, records, true); err != nil {
		t.Fatal(err)
	}

	want := "Chrom Pos SNP Freq Info\n11 C>T 0.5 pvalue:0.2\nchr1 21 G>A 0.5 pvalue:0.1\n"
	if buf.String() != want {
		t.Errorf("Got %q, expected %q", buf.String(), want)
	}
}

func TestWriteFileCompressed(t *testing.T) {
	records := []ExtendedVariant{
		mustExtended(t, "", 300, "T", "G", 0.125, map[string]string{"pvalue": "0.5", "depth": "8"}),
		mustExtended(t, "", 100, "A", "C", 0.25, map[string]string{"pvalue": "0.01"}),
		mustExtended(t, "", 200, "N", "T", 0.75, map[string]string{"generic-info": "foo=bar"}),
	}

	tests := []struct {
		name        string
		compression Compression
	}{
		{"calls.snp", CompressionDisabled},
		{"calls.snp.gz", CompressionGzip},
		{"calls.snp.zst", CompressionZStandard},
		{"calls.snp.xz", CompressionXZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompressionForPath(tt.name); got != tt.compression {
				t.Fatalf("CompressionForPath(%q) = %s, want %s", tt.name, got, tt.compression)
			}

			path := filepath.Join(t.TempDir(), tt.name)
			if err := WriteFile(context.Background(), path, records, true); err != nil {
				t.Fatal(err)
			}

			parsed, err := ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var got []string
			for _, r := range parsed {
				got = append(got, r.String())
			}
			want := []string{
				"101 A>C 0.25 pvalue:0.01",
				"201 N>T 0.75 generic-info:foo=bar",
				"301 T>G 0.125 depth:8;pvalue:0.5",
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

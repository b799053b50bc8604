package snp

import (
	"testing"
	"time"
)

func TestTimeScan(t *testing.T) {
	want := time.Date(2012, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
	}{
		{"unix seconds", want.Unix()},
		{"text", "2012-03-04 05:06:07"},
		{"bytes", []byte("2012-03-04 05:06:07")},
		{"time", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			if err := got.Scan(tt.in); err != nil {
				t.Fatal(err)
			}
			if !got.Time().Equal(want) {
				t.Errorf("Got %s, expected %s", got.Time(), want)
			}
		})
	}

	var bad Time
	if err := bad.Scan(3.5); err == nil {
		t.Errorf("Expected an error for a float")
	}
	if err := bad.Scan("yesterday"); err == nil {
		t.Errorf("Expected an error for unparseable text")
	}
}

func TestTimeValue(t *testing.T) {
	v, err := Time(time.Unix(1330837567, 0)).Value()
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 1330837567 {
		t.Errorf("Got %v, expected 1330837567", v)
	}
}

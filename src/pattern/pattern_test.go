package pattern

import (
	"errors"
	"testing"
)

func TestParseTwoColumns(t *testing.T) {
	s, err := Parse("10 5\n20 10\n30 5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", s.Len())
	}
	if s.Angles[1] != 20 || s.Intensities[1] != 10 {
		t.Fatalf("unexpected point: (%v,%v)", s.Angles[1], s.Intensities[1])
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	raw := "# comment header\n10 5\nbroken line here\n20 abc\n30 7 999 1234\n"
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// only "10 5" and "30 7 ..." survive; extra columns are ignored
	if s.Len() != 2 {
		t.Fatalf("expected 2 points, got %d (%v)", s.Len(), s.Angles)
	}
	if s.Angles[1] != 30 || s.Intensities[1] != 7 {
		t.Fatalf("extra columns mishandled: (%v,%v)", s.Angles[1], s.Intensities[1])
	}
}

func TestParseNoNumericData(t *testing.T) {
	for _, raw := range []string{"", "not numeric data", "one\ntwo three\n", "42\n7\n"} {
		if _, err := Parse(raw); !errors.Is(err, ErrNoData) {
			t.Fatalf("Parse(%q): expected ErrNoData, got %v", raw, err)
		}
	}
}

func TestParseNonUTF8(t *testing.T) {
	if _, err := Parse(string([]byte{0xff, 0xfe, 0x20})); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for binary content, got %v", err)
	}
}

func TestStripExtension(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Sample1.XY", "Sample1"},
		{"sample2.xy", "sample2"},
		{"data.txt", "data.txt"},
		{"nested.xy.xy", "nested.xy"},
		{"noext", "noext"},
	}
	for _, c := range cases {
		if got := StripExtension(c.in); got != c.want {
			t.Errorf("StripExtension(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAngleSpan(t *testing.T) {
	min, max, ok := AngleSpan([]string{"10 5\n90 2\n", "not numeric", "5 1\n60 3\n"})
	if !ok {
		t.Fatalf("expected ok")
	}
	if min != 5 || max != 90 {
		t.Fatalf("expected span [5,90], got [%v,%v]", min, max)
	}
}

func TestAngleSpanNoValidData(t *testing.T) {
	if _, _, ok := AngleSpan([]string{"", "garbage", "x y\n"}); ok {
		t.Fatalf("expected ok=false with no valid data")
	}
}

package symbol

import "testing"

func TestFromByteRoundTrip(t *testing.T) {
	for _, c := range "ICFP" {
		s, err := FromByte(byte(c))
		if err != nil {
			t.Fatalf("FromByte(%q): %v", c, err)
		}
		if s.Byte() != byte(c) {
			t.Errorf("Byte() = %q, want %q", s.Byte(), c)
		}
	}
}

func TestFromByteRejectsUnknown(t *testing.T) {
	for _, c := range []byte{'X', 'i', 'c', ' ', '0'} {
		if _, err := FromByte(c); err == nil {
			t.Errorf("FromByte(%q) should have failed", c)
		}
	}
}

func TestParseAndJoinRoundTrip(t *testing.T) {
	const s = "ICFPICFPIIIICCFFPP"
	xs, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(xs) != len(s) {
		t.Fatalf("len = %d, want %d", len(xs), len(s))
	}
	if got := Join(xs); got != s {
		t.Errorf("Join(Parse(%q)) = %q", s, got)
	}
}

func TestParseFailsOnBadByte(t *testing.T) {
	if _, err := Parse("ICFX"); err == nil {
		t.Fatal("expected error for unexpected symbol")
	}
}

func TestWordString(t *testing.T) {
	w := Word{I, C, F, P, I, C, F}
	if got := w.String(); got != "ICFPICF" {
		t.Errorf("Word.String() = %q", got)
	}
}

package uuid

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestNewV7_SetsVersionAndVariant(t *testing.T) {
	t.Parallel()

	u := NewV7()

	// Version nibble in byte 6 must be 0b0111 (v7)
	if (u[6]>>4)&0x0f != 0x07 {
		t.Fatalf("expected version 7 nibble, got %x", (u[6]>>4)&0x0f)
	}

	// Variant in byte 8 must be RFC 9562 (10xxxxxx)
	if (u[8] & 0xc0) != 0x80 {
		t.Fatalf("expected variant bits 10xxxxxx, got %08b", u[8])
	}
}

func TestUUID_String_Format(t *testing.T) {
	t.Parallel()

	u := NewV7()
	s := u.String()

	if len(s) != 36 {
		t.Fatalf("expected UUID string len=36, got %d (%q)", len(s), s)
	}

	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	if !re.MatchString(s) {
		t.Fatalf("expected canonical v7 uuid format, got %q", s)
	}
}

func TestNewV7_SortsByTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := newV7At(base).String()
	later := newV7At(base.Add(time.Millisecond)).String()

	if earlier >= later {
		t.Fatalf("expected %s < %s", earlier, later)
	}
	if got := newV7At(base).Time(); !got.Equal(base) {
		t.Errorf("Time() = %v; want %v", got, base)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	u := NewV7()
	got, err := Parse(u.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != u {
		t.Fatalf("Parse(%s) = %s", u, got)
	}

	for _, bad := range []string{"", "not-a-uuid", "0192f7c8-1234-7abc-8def-00000000000g"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalidUUID) {
			t.Errorf("Parse(%q) error = %v; want ErrInvalidUUID", bad, err)
		}
	}
}

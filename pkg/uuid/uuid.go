// Package uuid provides UUID v7 generation.
// v7 ids sort by creation time, so audit rows page newest-first on the primary key.
package uuid

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// UUID represents a UUID v7 identifier.
type UUID [16]byte

var ErrInvalidUUID = errors.New("invalid uuid")

// NewV7 generates a new UUID v7 for the current time.
func NewV7() UUID {
	return newV7At(time.Now())
}

// newV7At lays out a v7 UUID:
// - 48 bits: UNIX timestamp in milliseconds
// - 4 bits: version 0111
// - 12 bits: random
// - 2 bits: variant 10
// - 62 bits: random
func newV7At(t time.Time) UUID {
	var u UUID
	ms := t.UnixMilli()

	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	_, _ = rand.Read(u[6:]) // crypto/rand.Read never fails on supported platforms

	u[6] = 0x70 | (u[6] & 0x0f)
	u[8] = 0x80 | (u[8] & 0x3f)
	return u
}

// Time returns the millisecond timestamp embedded in u.
func (u UUID) Time() time.Time {
	ms := int64(u[0])<<40 | int64(u[1])<<32 | int64(u[2])<<24 |
		int64(u[3])<<16 | int64(u[4])<<8 | int64(u[5])
	return time.UnixMilli(ms).UTC()
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}

// Parse reads the canonical 36-character form.
func Parse(s string) (UUID, error) {
	var u UUID
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return u, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	compact := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36]
	if _, err := hex.Decode(u[:], []byte(compact)); err != nil {
		return UUID{}, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return u, nil
}

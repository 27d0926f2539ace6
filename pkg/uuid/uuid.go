// Package uuid provides UUID v7 generation for request correlation IDs.
// UUID v7 is sortable by timestamp, which keeps correlated log lines in
// rough request order when searched by id prefix.
package uuid

import (
	crand "crypto/rand"
	"fmt"
	"time"
)

// UUID represents a UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7 (per RFC 9562):
// 48 bits of UNIX milliseconds, then version/variant bits over random fill.
func NewV7() UUID {
	var u UUID

	now := time.Now().UnixMilli()
	u[0] = byte(now >> 40)
	u[1] = byte(now >> 32)
	u[2] = byte(now >> 24)
	u[3] = byte(now >> 16)
	u[4] = byte(now >> 8)
	u[5] = byte(now)

	// crypto/rand.Read on the platform entropy source does not fail in
	// practice; a short read would already have panicked inside Read.
	_, _ = crand.Read(u[6:])

	u[6] = 0x70 | (u[6] & 0x0f) // version 7
	u[8] = 0x80 | (u[8] & 0x3f) // RFC 4122 variant

	return u
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}

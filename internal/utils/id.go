package utils

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. ULIDs sort lexicographically by
// creation time, which keeps object listings in upload order.
func NewULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

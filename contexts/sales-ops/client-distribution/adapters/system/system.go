// Package system holds the store-independent Clock and IDGenerator used by
// the SQL-backed runtimes.
package system

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Clock implements ports.Clock using wall-clock UTC time.
type Clock struct{}

func (Clock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator implements ports.IDGenerator using RFC 4122 UUID v4 values.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

package models

import (
	"fmt"
	"time"
)

// Tombstone produces the replacement value written over unique columns when a
// row is soft deleted, freeing the original value for reuse by live rows.
func Tombstone(at time.Time) string {
	return fmt.Sprintf("deleted_%d", at.UnixMilli())
}

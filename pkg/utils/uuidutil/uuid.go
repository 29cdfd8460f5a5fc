package uuidutil

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// UUID returns a random identifier as 32 lowercase hex digits, safe to
// use as a file name component.
func UUID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers for records that do not use the
// month-sequenced session ID format (planned sessions, books).
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

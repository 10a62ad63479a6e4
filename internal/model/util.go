package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// CreateID returns a fresh random identifier: a v4 UUID rendered in base58
// so it stays compact in URLs and log lines.
func CreateID() string {
	id, _ := uuid.NewRandom()
	return base58.Encode(id[:])
}

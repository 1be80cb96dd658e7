package utils

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// IDLength is the length of a document reference in hex characters.
const IDLength = 24

// NewID returns a 12-byte reference rendered as 24 lowercase hex characters:
// 4 bytes of unix seconds followed by 8 random bytes, so ids sort roughly by
// creation time.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	r := uuid.New()
	copy(b[4:], r[8:])
	return hex.EncodeToString(b[:])
}

// IsValidID reports whether id has the document reference syntax.
func IsValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

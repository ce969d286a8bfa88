package task

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

const (
	minIDLength  = 3
	maxIDLength  = 8
	nonceSize    = 16 // 128 bits of entropy
	hexChunkSize = 4  // Process 4 hex chars (16 bits) at a time for base36 conversion
)

// GenerateID creates a unique task ID using hash-based generation with adaptive length.
// It starts with minIDLength characters and grows up to maxIDLength to avoid collisions.
func GenerateID(text string, createdAt time.Time, existsFn func(ID) bool) ID {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	h := blake3.New()
	_, _ = h.Write([]byte(text))
	_, _ = h.Write([]byte(createdAt.Format(time.RFC3339Nano)))
	_, _ = h.Write(nonce)
	sum := h.Sum(nil)

	base36 := hexToBase36(hex.EncodeToString(sum))

	for length := minIDLength; length <= maxIDLength; length++ {
		if length > len(base36) {
			break
		}
		candidate := ID(base36[:length])
		if !existsFn(candidate) {
			return candidate
		}
	}

	// Fallback: the full hash (extremely unlikely to reach here)
	return ID(base36)
}

// hexToBase36 converts a hex string to base36.
func hexToBase36(hexStr string) string {
	var result strings.Builder
	for i := 0; i < len(hexStr); i += hexChunkSize {
		end := min(i+hexChunkSize, len(hexStr))
		val, _ := strconv.ParseUint(hexStr[i:end], 16, 64)
		result.WriteString(strconv.FormatUint(val, 36))
	}
	return result.String()
}

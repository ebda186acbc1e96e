package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateSessionID creates an identifier for one UI session.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20251217_205106_a7b3
func GenerateSessionID() string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for game-world fingerprints. Version suffix enables future
// algorithm migration.
const domainGameWorld = "cardsmith/gameworld/v1"

// Fingerprint computes a stable content hash of the exported document:
// SHA-256 over the canonical serialization with domain separation. The
// autosaver compares fingerprints to skip writing unchanged documents.
func Fingerprint(w GameWorld) (string, error) {
	canonical, err := MarshalCanonical(w)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(domainGameWorld, canonical), nil
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

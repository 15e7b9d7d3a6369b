package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the number of hex characters kept from the digest.
const idLength = 16

// ElementID derives the content-addressed identifier of an element.
// The file path is part of the digest, so identical code in two files
// gets two different ids.
func ElementID(filePath, code string) string {
	sum := sha256.Sum256([]byte(filePath + ":" + code))
	return hex.EncodeToString(sum[:])[:idLength]
}

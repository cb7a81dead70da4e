package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex SHA-256 of text's bytes. It is a plain hash,
// comparable with the output of sha256sum on the document.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

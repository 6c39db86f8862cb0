// Package cas computes BLAKE3 content digests. The API uses them to key
// cached responses and as HTTP entity tags.
package cas

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest computes the hex BLAKE3-256 of data.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Key digests an ordered list of parts with BLAKE3. Each part is length
// prefixed, so ("ab","c") and ("a","bc") never collide.
func Key(parts ...string) string {
	h := blake3.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ETag formats a digest as a strong HTTP entity tag.
func ETag(digest string) string {
	return `"` + digest + `"`
}

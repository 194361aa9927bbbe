// Package hashutil holds the digest helpers shared by the fingerprint
// engine.
package hashutil

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// MD5Hex returns the lowercase hex MD5 digest of the newline-joined tokens.
func MD5Hex(tokens []string) string {
	sum := md5.Sum([]byte(strings.Join(tokens, "\n")))
	return hex.EncodeToString(sum[:])
}

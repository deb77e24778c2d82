package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// Algorithm identifies the keyed hash fixed by the protocol. The protocol
// surface is closed, so the algorithm is a compile-time constant rather
// than configuration.
const Algorithm = "hmac-sha256"

// Compute derives the expected digest for a delivery. The hash input is
// the exact text "<millis>.<payload>" hashed with HMAC-SHA256 under the
// secret, and the digest is returned base64-encoded. Identical inputs
// always yield an identical output byte-for-byte.
func Compute(timestamp time.Time, payload string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp.UnixMilli(), 10)))
	mac.Write([]byte("."))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign produces a complete serialized signature for a payload. This is the
// issuing side of the protocol; receivers only need Verify.
func Sign(timestamp time.Time, payload []byte, secret []byte) string {
	return EncodeSignature(timestamp, Compute(timestamp, string(payload), secret))
}

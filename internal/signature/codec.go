package signature

import (
	"strconv"
	"strings"
	"time"
)

// Reserved keys and separators of the serialized signature format.
// The grammar is item (',' item)*, item := key ':' value. Unknown keys
// are ignored.
const (
	timestampKey = "t"
	hmacKey      = "hmac"

	itemSeparator = ","
	pairSeparator = ":"
)

// DecodedSignature holds the structured fields carried by a serialized
// signature string. Both fields are required; a signature string missing
// either one does not decode.
type DecodedSignature struct {
	// Timestamp is the instant the delivery was signed, millisecond
	// precision, UTC.
	Timestamp time.Time

	// Hmac is the base64 digest claimed by the sender. Its content is not
	// validated during decode; correctness is established by comparison
	// during verification.
	Hmac string
}

// ParseSignature decodes a serialized signature string of the form
// "t:<millis>,hmac:<base64>".
//
// Each item is split on its first ':'. An item without a ':' carries no
// value and its key is treated as absent; a repeated key is overwritten
// by its later occurrence. Both behaviors are kept for wire compatibility
// with existing senders rather than rejected as malformed.
func ParseSignature(signature string) (DecodedSignature, error) {
	fields := make(map[string]string)
	for _, item := range strings.Split(signature, itemSeparator) {
		key, value, _ := strings.Cut(item, pairSeparator)
		fields[key] = value
	}

	ts, ok := fields[timestampKey]
	if !ok || ts == "" {
		return DecodedSignature{}, newError(KindMissingTimestamp, "signature has no %q field", timestampKey)
	}

	millis, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return DecodedSignature{}, newError(KindInvalidTimestamp, "timestamp %q is not a base-10 integer", ts)
	}
	if millis < 0 {
		return DecodedSignature{}, newError(KindInvalidTimestamp, "timestamp %d is negative", millis)
	}

	digest, ok := fields[hmacKey]
	if !ok || digest == "" {
		return DecodedSignature{}, newError(KindMissingHmac, "signature has no %q field", hmacKey)
	}

	return DecodedSignature{
		Timestamp: time.UnixMilli(millis).UTC(),
		Hmac:      digest,
	}, nil
}

// EncodeSignature serializes a timestamp and digest into the wire form
// accepted by ParseSignature
func EncodeSignature(timestamp time.Time, digest string) string {
	millis := strconv.FormatInt(timestamp.UnixMilli(), 10)
	return timestampKey + pairSeparator + millis + itemSeparator + hmacKey + pairSeparator + digest
}

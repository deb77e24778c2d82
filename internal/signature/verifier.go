package signature

import (
	"crypto/hmac"
	"encoding/json"
	"time"
	"unicode/utf8"
)

// VerificationResult is produced only on full success. There is no
// partial or degraded result.
type VerificationResult struct {
	// Timestamp is the verified signing instant carried by the signature
	Timestamp time.Time

	// Event is the payload parsed as JSON
	Event interface{}
}

// Verify authenticates a webhook delivery. It decodes the signature
// string, recomputes the digest over the payload with the shared secret,
// compares the two in constant time, and on a match parses the payload as
// JSON.
//
// The payload must be the exact bytes delivered as the webhook body; any
// re-encoding before this call breaks the digest. Verify never logs and
// never retains the secret, and is safe to call concurrently.
//
// Failures are *VerificationError values. A digest mismatch surfaces as
// KindInvalidSignature; a payload that authenticates but is not valid
// JSON surfaces as KindPayloadParse, which tells the caller the sender is
// genuine but the body is unusable.
func Verify(payload []byte, signature string, secret []byte) (*VerificationResult, error) {
	decoded, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(payload) {
		return nil, newError(KindPayloadEncoding, "payload is not valid UTF-8")
	}

	expected := Compute(decoded.Timestamp, string(payload), secret)
	if !hmac.Equal([]byte(decoded.Hmac), []byte(expected)) {
		return nil, newError(KindInvalidSignature, "computed digest does not match the claimed hmac")
	}

	var event interface{}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, wrapError(KindPayloadParse, err, "payload authenticated but is not valid JSON")
	}

	return &VerificationResult{
		Timestamp: decoded.Timestamp,
		Event:     event,
	}, nil
}

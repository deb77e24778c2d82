// Package signature verifies the authenticity and freshness of inbound
// webhook deliveries.
//
// A delivery arrives with a compact signature string alongside the raw
// request body:
//
//	t:1700000000000,hmac:WxxKGsre/BMhTKr202XQKZLwFVRMhQb/cDy2uw15cnA=
//
// The t field is the signing instant in milliseconds since epoch and the
// hmac field is base64(HMAC-SHA256(secret, "<millis>.<body>")). Verify
// recomputes the digest under the shared secret, compares it to the
// claimed one in constant time, and only then parses the body as JSON.
//
// # Usage
//
//	result, err := signature.Verify(body, sigHeader, []byte(secret))
//	if err != nil {
//	    switch signature.KindOf(err) {
//	    case signature.KindInvalidSignature:
//	        // forged or corrupted delivery
//	    case signature.KindPayloadParse:
//	        // authentic sender, unusable body
//	    default:
//	        // malformed signature string
//	    }
//	    return
//	}
//	// result.Timestamp, result.Event
//
// # Security Considerations
//
//   - Digest comparison is constant time (hmac.Equal)
//   - The package never logs and never retains the secret
//   - Verify establishes authenticity, not freshness: the caller should
//     reject deliveries whose result.Timestamp falls outside its replay
//     window
//
// Every call is independent and stateless, so the package is safe for
// concurrent use without coordination.
package signature

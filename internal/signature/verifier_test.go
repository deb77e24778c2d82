package signature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_KnownVector(t *testing.T) {
	payload := []byte(`{"type":"test"}`)
	sig := "t:1700000000000,hmac:WxxKGsre/BMhTKr202XQKZLwFVRMhQb/cDy2uw15cnA="

	result, err := Verify(payload, sig, []byte("whsec_test"))
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), result.Timestamp.UnixMilli())
	assert.Equal(t, map[string]interface{}{"type": "test"}, result.Event)
}

func TestVerify_SignRoundTrip(t *testing.T) {
	secret := []byte("whsec_roundtrip")
	payload := []byte(`{"type":"upload.complete","data":{"fileId":"f_123","size":2048}}`)
	ts := time.UnixMilli(1712345678901)

	result, err := Verify(payload, Sign(ts, payload, secret), secret)
	require.NoError(t, err)

	assert.True(t, result.Timestamp.Equal(ts))
	event, ok := result.Event.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "upload.complete", event["type"])
}

func TestVerify_TamperedPayload(t *testing.T) {
	secret := []byte("whsec_test")
	payload := []byte(`{"type":"test"}`)
	sig := Sign(time.UnixMilli(1700000000000), payload, secret)

	// flipping any single byte after signing must fail verification
	for i := range payload {
		tampered := make([]byte, len(payload))
		copy(tampered, payload)
		tampered[i] ^= 0x01

		_, err := Verify(tampered, sig, secret)
		require.Error(t, err, "byte %d", i)
		assert.True(t, IsKind(err, KindInvalidSignature), "byte %d: got %v", i, err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := []byte(`{"type":"test"}`)
	sig := Sign(time.UnixMilli(1700000000000), payload, []byte("whsec_test"))

	_, err := Verify(payload, sig, []byte("whsec_other"))
	assert.True(t, IsKind(err, KindInvalidSignature))
}

func TestVerify_TamperedTimestamp(t *testing.T) {
	payload := []byte(`{"type":"test"}`)
	digest := Compute(time.UnixMilli(1700000000000), string(payload), []byte("whsec_test"))

	_, err := Verify(payload, "t:1700000000001,hmac:"+digest, []byte("whsec_test"))
	assert.True(t, IsKind(err, KindInvalidSignature))
}

func TestVerify_DecodeFailuresPropagate(t *testing.T) {
	tests := []struct {
		name       string
		signature  string
		expectKind ErrorKind
	}{
		{"missing timestamp", "hmac:abc", KindMissingTimestamp},
		{"missing hmac", "t:100", KindMissingHmac},
		{"negative timestamp", "t:-5,hmac:abc", KindInvalidTimestamp},
		{"non-numeric timestamp", "t:abc,hmac:xyz", KindInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify([]byte("{}"), tt.signature, []byte("secret"))
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.expectKind), "got %v", err)
		})
	}
}

func TestVerify_AuthenticButUnparseable(t *testing.T) {
	secret := []byte("whsec_test")
	payload := []byte("not-json")
	sig := Sign(time.UnixMilli(1700000000000), payload, secret)

	_, err := Verify(payload, sig, secret)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPayloadParse), "got %v", err)
	assert.False(t, IsKind(err, KindInvalidSignature))
}

func TestVerify_InvalidUTF8Payload(t *testing.T) {
	payload := []byte{0xff, 0xfe, 0xfd}
	sig := Sign(time.UnixMilli(1700000000000), payload, []byte("secret"))

	_, err := Verify(payload, sig, []byte("secret"))
	assert.True(t, IsKind(err, KindPayloadEncoding), "got %v", err)
}

func TestVerify_NonObjectJSONPayload(t *testing.T) {
	// any valid JSON value is an acceptable event, not just objects
	secret := []byte("secret")
	payload := []byte(`[1,2,3]`)
	ts := time.UnixMilli(1700000000000)

	result, err := Verify(payload, Sign(ts, payload, secret), secret)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, result.Event)
}

func TestKindOf(t *testing.T) {
	_, err := Verify([]byte("{}"), "", []byte("secret"))
	assert.Equal(t, KindMissingTimestamp, KindOf(err))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

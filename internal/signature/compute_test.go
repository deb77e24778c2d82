package signature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompute_KnownVector(t *testing.T) {
	// base64(HMAC-SHA256("whsec_test", "1700000000000.{\"type\":\"test\"}"))
	digest := Compute(time.UnixMilli(1700000000000), `{"type":"test"}`, []byte("whsec_test"))
	assert.Equal(t, "WxxKGsre/BMhTKr202XQKZLwFVRMhQb/cDy2uw15cnA=", digest)
}

func TestCompute_Deterministic(t *testing.T) {
	ts := time.UnixMilli(1234567890123)
	secret := []byte("secret")

	first := Compute(ts, `{"a":1}`, secret)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(ts, `{"a":1}`, secret))
	}
}

func TestCompute_DistinctInputsDistinctDigests(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	base := Compute(ts, `{"type":"test"}`, []byte("whsec_test"))

	assert.NotEqual(t, base, Compute(ts, `{"type":"test"}`, []byte("whsec_other")))
	assert.NotEqual(t, base, Compute(ts, `{"type":"prod"}`, []byte("whsec_test")))
	assert.NotEqual(t, base, Compute(time.UnixMilli(1700000000001), `{"type":"test"}`, []byte("whsec_test")))
}

func TestSign(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	payload := []byte(`{"type":"test"}`)

	assert.Equal(t,
		"t:1700000000000,hmac:WxxKGsre/BMhTKr202XQKZLwFVRMhQb/cDy2uw15cnA=",
		Sign(ts, payload, []byte("whsec_test")))
}

package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureVerifier(t *testing.T) {
	verifier := NewSignatureVerifier("sk_test_secret")
	body := []byte(`{"event":"charge.success","data":{"amount":50000}}`)

	t.Run("round trip verifies", func(t *testing.T) {
		assert.True(t, verifier.Verify(body, verifier.Sign(body)))
	})

	t.Run("any single byte mutation invalidates", func(t *testing.T) {
		sig := verifier.Sign(body)
		for i := range body {
			mutated := append([]byte(nil), body...)
			mutated[i] ^= 0x01
			assert.False(t, verifier.Verify(mutated, sig), "mutation at byte %d verified", i)
		}
	})

	t.Run("missing signature never verifies", func(t *testing.T) {
		assert.False(t, verifier.Verify(body, ""))
	})

	t.Run("wrong secret never verifies", func(t *testing.T) {
		other := NewSignatureVerifier("sk_test_other")
		assert.False(t, verifier.Verify(body, other.Sign(body)))
	})
}

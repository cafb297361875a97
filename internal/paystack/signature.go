package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// SignatureHeader is the webhook signature header sent by the gateway.
const SignatureHeader = "x-paystack-signature"

// SignatureVerifier checks webhook authenticity. Verification runs over the
// raw request bytes exactly as delivered; re-encoding a parsed payload can
// reorder keys and break the digest.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

// Sign computes the hex HMAC-SHA512 digest of body.
func (v *SignatureVerifier) Sign(body []byte) string {
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the digest of body. A missing
// signature never verifies. The comparison is constant-time.
func (v *SignatureVerifier) Verify(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := v.Sign(body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

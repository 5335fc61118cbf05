package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature authenticates a gateway payment callback. The gateway
// signs the exact concatenation "order_id|payment_id" with the shared key
// secret; the signature is the lowercase hex HMAC-SHA256 digest. Comparison
// is exact-byte and constant time. Altering any character of the order id,
// payment id or signature must fail.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the callback signature for the given pair. Tests and the
// mock gateway use it; the production path only ever verifies.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

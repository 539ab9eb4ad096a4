package external

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// emptyBody is the canonical representation of an absent request body.
// The upstream API signs and verifies "{}" for body-less requests.
var emptyBody = []byte("{}")

// Sign computes the lowercase hex HMAC-SHA512 of the serialized request
// body under the account secret. The upstream system recomputes the
// same signature to authenticate the request, so the output is fully
// deterministic for a given (body, secret) pair.
func Sign(body []byte, secret string) string {
	if len(body) == 0 {
		body = emptyBody
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

package commercehub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

// CalculateSignature computes the Authorization header value for a gateway
// request: base64(HMAC-SHA256(secretKey, apiKey || clientRequestId ||
// timestampMillis || rawBody)). The four components are concatenated as
// their plain string forms with no delimiter; the gateway recomputes the
// same digest, so this must be bit-exact.
func CalculateSignature(secretKey, apiKey, clientRequestID string, timestampMillis int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(apiKey))
	mac.Write([]byte(clientRequestID))
	mac.Write([]byte(strconv.FormatInt(timestampMillis, 10)))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

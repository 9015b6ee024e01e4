package helpers

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

func HMACSHA256Hex(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// SeamlessSign signs a seamless wallet callback. ref is the transaction ID for
// money movements, the launch token for authenticate and empty for balance.
func SeamlessSign(secret, agentID, userID, ref string) string {
	return HMACSHA256Hex(secret, agentID+userID+ref)
}

// SignEqual compares two hex digests in constant time, ignoring case.
func SignEqual(expected, got string) bool {
	return hmac.Equal([]byte(strings.ToLower(expected)), []byte(strings.ToLower(got)))
}

// PragmaticHash is md5 over the sorted k=v pairs (hash excluded) followed by the secret.
func PragmaticHash(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := md5.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

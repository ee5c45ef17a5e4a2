package generator

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewToken returns a random token of the given length drawn from a
// 62-character alphabet. Bytes above the last full multiple of the
// alphabet size are discarded so every character stays equally likely.
func NewToken(length int) (string, error) {
	const limit = byte(len(alphabet) * 4) // 248

	result := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(result) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if len(result) == length {
				break
			}
			if b >= limit {
				continue
			}
			result = append(result, alphabet[int(b)%len(alphabet)])
		}
	}

	return string(result), nil
}

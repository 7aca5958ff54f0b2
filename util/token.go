package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	secretLen     = 16
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateToken returns a fresh API key prefix and secret. The full key
// handed to the user is prefix.secret; only the bcrypt hash of it should
// be kept on the server side.
func GenerateToken() (string, string, error) {
	head, err := randomChars(4, alphabet)
	if err != nil {
		return "", "", err
	}
	tail, err := randomChars(3, tokenAlphabet)
	if err != nil {
		return "", "", err
	}
	secret, err := randomChars(secretLen, tokenAlphabet)
	if err != nil {
		return "", "", err
	}
	return head + "_" + tail, secret, nil
}

func randomChars(n int, chars string) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(chars)))
	for i := 0; i < n; i++ {
		j, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(chars[j.Int64()])
	}
	return sb.String(), nil
}

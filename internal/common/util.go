package common

import "crypto/rand"

// GenerateRandBytes returns n bytes drawn from the platform CSPRNG.
func GenerateRandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

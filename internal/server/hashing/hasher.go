// Package hashing implements the security primitives the identity flows
// depend on: salted PBKDF2 password hashing and secure random token
// generation.
package hashing

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/errgroup"

	"github.com/mpetrovs/authcore/internal/common"
)

// SaltRounds is the PBKDF2 iteration count. Changing it invalidates every
// stored hash, so treat it as frozen.
const SaltRounds = 1000

// credentialLen is the size of both the salt and the derived digest,
// matching the SHA-512 output length.
const credentialLen = sha512.Size

// tokenLen is the number of random bytes behind one issued token.
const tokenLen = sha512.Size

// HashResult bundles the two base64-encoded outputs of a derivation.
type HashResult struct {
	Salt string
	Hash string
}

func derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, SaltRounds, credentialLen, sha512.New)
}

// HashPassword generates a fresh random salt and derives the password digest
// with PBKDF2-HMAC-SHA512.
func HashPassword(password string) (*HashResult, error) {
	salt, err := common.GenerateRandBytes(credentialLen)
	if err != nil {
		return nil, fmt.Errorf("salt generation: %w", err)
	}

	hash := derive(password, salt)

	return &HashResult{
		Salt: base64.StdEncoding.EncodeToString(salt),
		Hash: base64.StdEncoding.EncodeToString(hash),
	}, nil
}

// HashPasswordWithSalt re-runs the derivation with a caller-supplied base64
// salt. Used to check a candidate password against a stored hash.
func HashPasswordWithSalt(password, salt string) (*HashResult, error) {
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("salt decode: %w", err)
	}

	hash := derive(password, raw)

	return &HashResult{
		Salt: salt,
		Hash: base64.StdEncoding.EncodeToString(hash),
	}, nil
}

// Verify re-derives the candidate password with the stored salt and compares
// the result to the stored hash in constant time.
func Verify(password, salt, storedHash string) bool {
	result, err := HashPasswordWithSalt(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(result.Hash), []byte(storedHash)) == 1
}

// GenerateTokens returns n independent secure-random tokens, base64-encoded.
// The draws are independent with no shared state, so they run concurrently;
// if any single draw fails the whole call fails and partial results are
// discarded.
func GenerateTokens(ctx context.Context, n int) ([]string, error) {
	tokens := make([]string, n)

	g, _ := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			b, err := common.GenerateRandBytes(tokenLen)
			if err != nil {
				return fmt.Errorf("token generation: %w", err)
			}
			tokens[i] = base64.StdEncoding.EncodeToString(b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Package service provides technical services for voucher management.
package service

import (
	"crypto/rand"
	"math/big"

	apperrors "github.com/redeemly/vouchers/internal/errors"
)

// DefaultAlphabet is the default character set for voucher codes. It excludes
// visually confusable characters (0/O/o, I/i/l, k/K, v/V).
const DefaultAlphabet = "abcdefghjmnpqrstuwxyzABCDEFGHJMNPQRSTUWXYZ123456789"

// CodeGenerator defines operations for generating voucher codes.
// Implementations must use a cryptographically secure randomness source.
type CodeGenerator interface {
	// Generate creates a random code of the given length.
	// Returns an error wrapping ErrInvalidInput when length < 1.
	Generate(length int) (string, error)

	// GenerateBatch creates count random codes of the given length.
	// Codes are independent draws; duplicates within a batch are tolerated.
	GenerateBatch(count, length int) ([]string, error)
}

// codeGenerator implements CodeGenerator using crypto/rand with uniform
// character selection (rand.Int avoids modulo bias).
type codeGenerator struct {
	alphabet string
}

// Generate creates a random code of the given length.
func (g *codeGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "code length must be at least 1")
	}

	alphabetSize := big.NewInt(int64(len(g.alphabet)))
	code := make([]byte, length)

	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to generate random code")
		}
		code[i] = g.alphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateBatch creates count random codes of the given length.
func (g *codeGenerator) GenerateBatch(count, length int) ([]string, error) {
	if count < 1 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "code count must be at least 1")
	}

	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := g.Generate(length)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, nil
}

// NewCodeGenerator creates a CodeGenerator using the given alphabet.
// An empty alphabet selects DefaultAlphabet.
func NewCodeGenerator(alphabet string) CodeGenerator {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	return &codeGenerator{alphabet: alphabet}
}

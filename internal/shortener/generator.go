package shortener

import (
	"context"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the character set used for short codes.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLength is the length of generated short codes.
const DefaultCodeLength = 6

// maxCodeAttempts bounds the resampling loop in UniqueCode. At 62^6 possible
// codes a collision streak this long means the code space is effectively full.
const maxCodeAttempts = 100

// CodeGenerator produces one random short code per call.
type CodeGenerator func() Code

// NewCodeGenerator creates a generator drawing codes of the given length
// from Alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return func() Code {
		return Code(gen())
	}, nil
}

// CodeSet reports membership of codes already in use.
type CodeSet interface {
	Contains(ctx context.Context, code Code) (bool, error)
}

// UniqueCode draws codes from generate until one misses the used set.
// It returns ErrCodeSpaceExhausted after maxCodeAttempts consecutive collisions.
func UniqueCode(ctx context.Context, generate CodeGenerator, used CodeSet) (Code, error) {
	for range maxCodeAttempts {
		code := generate()

		taken, err := used.Contains(ctx, code)
		if err != nil {
			return "", err
		}

		if !taken {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

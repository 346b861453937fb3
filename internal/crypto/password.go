// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Default scrypt cost. The values are fixed at build time so a request can
// never raise the work factor.
const (
	scryptN      = 1 << 14
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16

	// hashSeparator splits the encoded salt from the derived key.
	hashSeparator = ":"
)

// DummyHash is a well-formed stored hash that matches no known password.
// Verifying against it costs the same as verifying a real hash, which keeps
// "unknown account" and "wrong password" indistinguishable by timing.
const DummyHash = "28096bb0897648bffe700629f9481e4f:" +
	"5365778d8d82bd7a7baa59e45178b4757ca9530dd6231b153f6106467e95f868" +
	"27d25efb367b2baee054276978fe4becdf84530d2e91cf36f970471d5b5b6509"

// scryptHasher is the [PasswordHasher] backed by scrypt.
//
// Stored format: hex(salt) + ":" + hex(derivedKey).
type scryptHasher struct {
	n, r, p int
	keyLen  int
	saltLen int

	rand io.Reader
}

// NewPasswordHasher returns the production [PasswordHasher]
// (scrypt N=16384, r=8, p=1, 64-byte key, 16-byte salt).
func NewPasswordHasher() PasswordHasher {
	return &scryptHasher{
		n:       scryptN,
		r:       scryptR,
		p:       scryptP,
		keyLen:  scryptKeyLen,
		saltLen: saltLen,
		rand:    rand.Reader,
	}
}

// Hash implements [PasswordHasher].
func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingSalt, err)
	}

	key, err := h.derive(password, salt)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + hashSeparator + hex.EncodeToString(key), nil
}

// Verify implements [PasswordHasher].
//
// The salt is taken from stored; the key length is fixed by the hasher, so a
// stored key of a different length is rejected without being compared.
func (h *scryptHasher) Verify(password, stored string) bool {
	salt, want, ok := decodeStoredHash(stored)
	if !ok {
		return false
	}

	got, err := h.derive(password, salt)
	if err != nil {
		return false
	}

	// lengths are public (fixed by the format), only the bytes are secret
	if subtle.ConstantTimeEq(int32(len(got)), int32(len(want))) != 1 {
		return false
	}

	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *scryptHasher) derive(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivingKey, err)
	}
	return key, nil
}

// decodeStoredHash splits and hex-decodes a stored hash. ok is false for a
// missing separator, an empty or non-hex segment.
func decodeStoredHash(stored string) (salt, key []byte, ok bool) {
	saltHex, keyHex, found := strings.Cut(stored, hashSeparator)
	if !found || saltHex == "" || keyHex == "" {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, false
	}

	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, false
	}

	return salt, key, true
}

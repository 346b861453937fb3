package crypto

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastHasher keeps the production format with a lower cost so the table
// tests stay quick.
func fastHasher() *scryptHasher {
	return &scryptHasher{n: 1 << 10, r: 8, p: 1, keyLen: scryptKeyLen, saltLen: saltLen, rand: rand.Reader}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestHash_RoundTrip(t *testing.T) {
	h := NewPasswordHasher()

	stored, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, h.Verify("correct horse battery staple", stored))
}

func TestHash_Format(t *testing.T) {
	h := fastHasher()

	stored, err := h.Hash("secret")
	require.NoError(t, err)

	saltHex, keyHex, found := strings.Cut(stored, ":")
	require.True(t, found)
	assert.Len(t, saltHex, saltLen*2)
	assert.Len(t, keyHex, scryptKeyLen*2)
}

func TestHash_SaltIsFresh(t *testing.T) {
	h := fastHasher()

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestHash_RandomFailure(t *testing.T) {
	h := fastHasher()
	h.rand = failingReader{}

	_, err := h.Hash("secret")
	assert.ErrorIs(t, err, ErrGeneratingSalt)
}

func TestVerify_WrongPassword(t *testing.T) {
	h := fastHasher()

	passwords := []string{"hunter2", "hunter3", "Hunter2", "hunter2 ", "", "пароль"}
	for _, stored := range passwords {
		hash, err := h.Hash(stored)
		require.NoError(t, err)

		for _, candidate := range passwords {
			if candidate == stored {
				continue
			}
			assert.False(t, h.Verify(candidate, hash), "%q must not verify against hash of %q", candidate, stored)
		}
	}
}

func TestVerify_MalformedStoredHash(t *testing.T) {
	h := fastHasher()

	valid, err := h.Hash("secret")
	require.NoError(t, err)
	saltHex, keyHex, _ := strings.Cut(valid, ":")

	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "missing separator", stored: saltHex + keyHex},
		{name: "only separator", stored: ":"},
		{name: "empty salt", stored: ":" + keyHex},
		{name: "empty key", stored: saltHex + ":"},
		{name: "non-hex salt", stored: "zz" + saltHex[2:] + ":" + keyHex},
		{name: "non-hex key", stored: saltHex + ":" + "xy" + keyHex[2:]},
		{name: "odd length key", stored: saltHex + ":" + keyHex[1:]},
		{name: "extra separator", stored: saltHex + ":" + keyHex + ":" + keyHex},
		{name: "short key", stored: saltHex + ":" + keyHex[:32]},
		{name: "long key", stored: saltHex + ":" + keyHex + "00"},
		{name: "argon2 style", stored: "$argon2id$v=19$t=3,m=65536,p=2$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify("secret", tt.stored))
			})
		})
	}
}

func TestVerify_DummyHashIsWellFormed(t *testing.T) {
	salt, key, ok := decodeStoredHash(DummyHash)
	require.True(t, ok)
	assert.Len(t, salt, saltLen)
	assert.Len(t, key, scryptKeyLen)

	assert.False(t, fastHasher().Verify("anything", DummyHash))
}

func TestVerify_ConcurrentUse(t *testing.T) {
	h := fastHasher()

	stored, err := h.Hash("parallel")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = h.Verify("parallel", stored)
			} else {
				results[i] = !h.Verify("wrong", stored)
			}
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "goroutine %d", i)
	}
}

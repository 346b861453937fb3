package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// tokenLen is the amount of entropy in a session token, in bytes.
const tokenLen = 32

type randomTokenIssuer struct {
	rand io.Reader
}

// NewTokenIssuer returns a [TokenIssuer] reading from the OS CSPRNG.
// Tokens are 32 random bytes encoded as unpadded base64url (43 chars), so
// they can be placed in a cookie value without quoting.
func NewTokenIssuer() TokenIssuer {
	return &randomTokenIssuer{rand: rand.Reader}
}

// IssueToken implements [TokenIssuer].
func (t *randomTokenIssuer) IssueToken() (string, error) {
	buf := make([]byte, tokenLen)
	if _, err := io.ReadFull(t.rand, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

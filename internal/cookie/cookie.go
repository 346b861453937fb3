// Package cookie serializes the session cookie and reads it back from an
// inbound Cookie header.
package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "__session"

// Codec builds Set-Cookie values for the session cookie.
//
// All cookies produced by a Codec are HttpOnly, SameSite=Lax and scoped to
// Path=/; Secure is added when the deployment runs behind TLS.
type Codec struct {
	name   string
	secure bool
}

// NewCodec returns a Codec for the session cookie. secure should be true in
// production, where the site is served over HTTPS.
func NewCodec(secure bool) Codec {
	return Codec{name: SessionCookieName, secure: secure}
}

// Name returns the cookie name handled by the codec.
func (c Codec) Name() string {
	return c.name
}

// Build serializes a session cookie carrying token. maxAge bounds how long the
// client keeps the cookie and should equal the session sliding window.
func (c Codec) Build(token string, maxAge time.Duration) string {
	seconds := int(maxAge / time.Second)
	if seconds <= 0 {
		// Max-Age=0 would clear the cookie we are trying to set
		seconds = 1
	}
	return c.cookie(token, seconds).String()
}

// BuildClear serializes a cookie that makes the client drop any stored token.
func (c Codec) BuildClear() string {
	// net/http renders a negative MaxAge as "Max-Age=0"
	return c.cookie("", -1).String()
}

// ExtractToken returns the session token from a raw Cookie header.
//
// Malformed pairs are skipped; an absent header, an absent cookie or an empty
// value all yield ok == false.
func (c Codec) ExtractToken(header string) (token string, ok bool) {
	if header == "" {
		return "", false
	}

	// http.Request.Cookie applies the tolerant net/http parser,
	// which drops invalid pairs instead of failing the whole header.
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	sessionCookie, err := req.Cookie(c.name)
	if err != nil || sessionCookie.Value == "" {
		return "", false
	}

	return sessionCookie.Value, true
}

func (c Codec) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NameOf returns the cookie name of a serialized Set-Cookie value, or "" when
// the value is not a cookie.
func NameOf(setCookie string) string {
	parsed, err := http.ParseSetCookie(setCookie)
	if err != nil {
		return ""
	}
	return parsed.Name
}

package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/cookie"
	"github.com/stretchr/testify/assert"
)

func TestHeaders_SetLastWins(t *testing.T) {
	h := NewHeaders()
	h.Set("cache-control", "no-cache")
	h.Set("Cache-Control", "no-store")

	assert.Equal(t, []string{"no-store"}, h.Values("Cache-Control"))
	assert.Equal(t, 1, h.Len())
}

func TestHeaders_AddKeepsEarlierValues(t *testing.T) {
	h := NewHeaders()
	h.Add("Vary", "Cookie")
	h.Add("Vary", "Accept")

	assert.Equal(t, []string{"Cookie", "Accept"}, h.Values("vary"))
	assert.Equal(t, "Accept", h.Get("Vary"))
}

func TestHeaders_SetCookieKeyedByCookieName(t *testing.T) {
	codec := cookie.NewCodec(false)

	h := NewHeaders()
	h.SetCookie(codec.BuildClear())
	h.SetCookie("theme=dark; Path=/")
	h.SetCookie(codec.Build("fresh", time.Hour))

	cookies := h.Values("Set-Cookie")
	assert.Len(t, cookies, 2)
	assert.Equal(t, "theme=dark; Path=/", cookies[0])
	assert.Contains(t, cookies[1], "__session=fresh")
}

func TestHeaders_SetCookieKeepsUnparseableValues(t *testing.T) {
	h := NewHeaders()
	h.SetCookie("no equals sign")
	h.SetCookie("=blank-name")
	h.SetCookie("theme=dark; Path=/")

	assert.Equal(t, []string{"no equals sign", "=blank-name", "theme=dark; Path=/"}, h.Values("Set-Cookie"))
}

func TestHeaders_SetRoutesCookies(t *testing.T) {
	h := NewHeaders()
	h.Set("Set-Cookie", "a=1")
	h.Set("Set-Cookie", "b=2")

	assert.Equal(t, []string{"a=1", "b=2"}, h.Values("Set-Cookie"))
}

func TestHeaders_Merge(t *testing.T) {
	codec := cookie.NewCodec(false)

	cleared := NewHeaders()
	cleared.SetCookie(codec.BuildClear())
	cleared.Set("X-Auth-State", "anonymous")
	cleared.Set("X-Trace-Id", "t1")

	renewed := NewHeaders()
	renewed.SetCookie(codec.Build("tok", time.Hour))
	renewed.Add("X-Auth-State", "user")
	renewed.Add("X-Auth-State", "renewed")

	cleared.Merge(renewed)

	assert.Equal(t, []string{"user", "renewed"}, cleared.Values("X-Auth-State"))
	assert.Equal(t, "t1", cleared.Get("X-Trace-Id"))
	cookies := cleared.Values("Set-Cookie")
	assert.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], "__session=tok")
	assert.NotContains(t, cookies[0], "Max-Age=0")
}

func TestHeaders_MergeNil(t *testing.T) {
	h := NewHeaders()
	h.Set("A", "1")
	h.Merge(nil)

	assert.Equal(t, 1, h.Len())
}

func TestHeaders_NilIsEmpty(t *testing.T) {
	var h *Headers

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Get("Set-Cookie"))
	assert.Nil(t, h.Values("Set-Cookie"))

	dst := http.Header{}
	h.WriteTo(dst)
	assert.Empty(t, dst)
}

func TestHeaders_WriteTo(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.SetCookie("a=1")
	h.SetCookie("b=2")

	dst := http.Header{}
	dst.Set("Content-Type", "application/json")
	dst.Add("Set-Cookie", "existing=1")

	h.WriteTo(dst)

	assert.Equal(t, []string{"text/plain"}, dst.Values("Content-Type"))
	assert.Equal(t, []string{"existing=1", "a=1", "b=2"}, dst.Values("Set-Cookie"))
}

package utils

import (
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so the whole resty API is available.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a resty client rooted at baseURL. The client keeps
// cookies between requests, which is how it carries the session cookie.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	// cookiejar.New only fails on a non-nil Options with a broken PublicSuffixList
	jar, _ := cookiejar.New(nil)
	client.SetCookieJar(jar)

	return &HTTPClient{Client: client}
}

package service

import (
	"net/url"
	"strings"
)

// DefaultRedirect is where a login lands when no safe target was supplied.
const DefaultRedirect = "/"

// redirectParam is the query parameter carrying the originally requested
// location on the login URL.
const redirectParam = "redirectTo"

// SafeRedirect returns target if it is a same-site relative path, and
// [DefaultRedirect] otherwise. Absolute URLs, scheme-relative "//host" forms
// and backslash tricks are rejected.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return DefaultRedirect
	}
	if strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n\t") {
		return DefaultRedirect
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return DefaultRedirect
	}
	return target
}

// loginRedirect builds "<loginPath>?redirectTo=<path?query#fragment>".
func loginRedirect(loginPath string, requested *url.URL) string {
	if requested == nil {
		return loginPath
	}

	target := requested.EscapedPath()
	if target == "" {
		target = "/"
	}
	if requested.RawQuery != "" {
		target += "?" + requested.RawQuery
	}
	if requested.Fragment != "" {
		target += "#" + requested.EscapedFragment()
	}

	return loginPath + "?" + url.Values{redirectParam: {target}}.Encode()
}

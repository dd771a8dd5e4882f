package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions builds the header policy for a JSON API. The service never
// serves HTML, so the content security policy denies everything and frames
// are rejected outright.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}
}

// NewSecure wraps handlers with the security headers from opts.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}

// Package fetch implements list fetchers that survive the backend's
// bot-challenge edge proxy.
//
// The proxy sometimes answers with an interstitial HTML page and a 200
// status, so the status code alone cannot be trusted. Every body is sniffed
// before it is accepted, and a soft block is routed around with a single
// POST retry.
package fetch

import (
	"bytes"
	"net/http"
)

// challengeMarkers are phrases found in interstitial pages served by the edge proxy.
// Matched case-insensitively.
var challengeMarkers = [][]byte{
	[]byte("just a moment..."),
	[]byte("cf-browser-verification"),
	[]byte("challenge-platform"),
	[]byte("cf_chl_opt"),
	[]byte("attention required! | cloudflare"),
	[]byte("checking your browser"),
}

var htmlPrefixes = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LooksLikeChallengePage reports whether body is an HTML document or carries
// a known challenge marker instead of an API payload.
func LooksLikeChallengePage(body []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), utf8BOM))
	if len(trimmed) == 0 {
		return false
	}

	lower := bytes.ToLower(trimmed)
	for _, prefix := range htmlPrefixes {
		if bytes.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, marker := range challengeMarkers {
		if bytes.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsBlockedStatus reports whether code is a forbidden or gateway status the
// edge proxy uses when it rejects a request.
func IsBlockedStatus(code int) bool {
	switch code {
	case http.StatusForbidden, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	// Cloudflare's 52x origin-error range.
	return code >= 520 && code <= 530
}

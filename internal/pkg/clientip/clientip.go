// Package clientip resolves a best-effort client address from proxy headers.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderRealIP         = "X-Real-IP"
	HeaderForwardedFor   = "X-Forwarded-For"
)

var (
	// ReviewOrder is consulted when recording review provenance.
	ReviewOrder = []string{HeaderForwardedFor, HeaderRealIP}
	// SubmissionOrder trusts the edge proxy header first.
	SubmissionOrder = []string{HeaderCFConnectingIP, HeaderRealIP, HeaderForwardedFor}
)

// Resolve walks headers in order and falls back to the connection address.
// It returns nil when nothing usable is found; it never fails.
func Resolve(r *http.Request, order []string) *string {
	if r == nil {
		return nil
	}
	for _, name := range order {
		if ip := headerValue(r.Header.Get(name)); ip != "" {
			return &ip
		}
	}
	if ip := remoteHost(r.RemoteAddr); ip != "" {
		return &ip
	}
	return nil
}

// headerValue returns the first hop of a possibly comma-separated chain.
func headerValue(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

func remoteHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

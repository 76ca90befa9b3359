package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// ForwardedForHeader lists the client and each proxy hop, left to right
const ForwardedForHeader = "X-Forwarded-For"

// ProxyTrust decides whose X-Forwarded-For header is believed. With no
// trusted networks the peer address is always the client.
type ProxyTrust struct {
	nets []netip.Prefix
}

// NewProxyTrust parses CIDRs or bare addresses of trusted reverse proxies
func NewProxyTrust(proxies []string) (*ProxyTrust, error) {
	t := &ProxyTrust{}
	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := parsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		t.nets = append(t.nets, p)
	}
	return t, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Trusted reports whether ip belongs to a trusted proxy
func (t *ProxyTrust) Trusted(ip string) bool {
	if t == nil || len(t.nets) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range t.nets {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client address for r. X-Forwarded-For is only read
// when the peer is a trusted proxy, and then from the right: the first hop
// that is not itself a trusted proxy is the client.
func (t *ProxyTrust) Resolve(r *http.Request) string {
	peer := remoteHost(r)
	if !t.Trusted(peer) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values(ForwardedForHeader), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			// garbage from upstream ends the trusted chain
			return peer
		}
		if !t.Trusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

// ClientAddr stores the resolved client address for ClientIP
func ClientAddr(t *ProxyTrust) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey, t.Resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

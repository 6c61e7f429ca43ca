package geolib

import (
	"net"
	"net/http"
	"strings"
)

// headers which proxies use to pass an address of the client. Order
// matters: first present header wins.
var clientAddressHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"HTTP_X_FORWARDED_FOR",
	"HTTP_X_REAL_IP",
	"HTTP_CLIENT_IP",
}

// private address detection is a plain prefix match, not CIDR
// containment.
var localAddressPrefixes = []string{
	"127.",
	"192.168.",
	"10.",
}

// ExtractClientAddress returns an address of the client which has sent
// a request.
//
// Proxy headers are checked first. For the first present header only
// the first element of comma-separated chain is taken. If no proxy
// header has a usable value, a direct peer address is returned.
func ExtractClientAddress(req *http.Request) (string, bool) {
	if req == nil {
		return "", false
	}

	for _, name := range clientAddressHeaders {
		values := req.Header.Values(name)
		if len(values) == 0 {
			continue
		}

		addr := strings.TrimSpace(strings.SplitN(values[0], ",", 2)[0])
		if addr != "" {
			return addr, true
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	host = strings.TrimSpace(host)

	return host, host != ""
}

// IsLocalAddress checks if address looks like loopback or private one.
func IsLocalAddress(addr string) bool {
	for _, prefix := range localAddressPrefixes {
		if strings.HasPrefix(addr, prefix) {
			return true
		}
	}

	return false
}

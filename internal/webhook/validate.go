package webhook

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL  = errors.New("invalid webhook url")
	ErrInsecureURL = errors.New("webhook url must use https")
	ErrPrivateURL  = errors.New("webhook url targets a private or loopback host")
)

var privateHostSuffixes = []string{".localhost", ".local", ".internal"}

// ValidateURL accepts absolute http(s) URLs. In production only https is
// allowed and hosts resolving to internal networks by name or literal address
// are rejected. Hostnames are not resolved.
func ValidateURL(raw string, production bool) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Join(ErrInvalidURL, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return errors.Join(ErrInvalidURL, errors.New("missing host"))
	}

	if !production {
		return nil
	}

	if u.Scheme != "https" {
		return ErrInsecureURL
	}

	host = strings.TrimSuffix(host, ".")
	if host == "localhost" {
		return ErrPrivateURL
	}

	for _, suffix := range privateHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return ErrPrivateURL
		}
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		if numericHost(host) {
			return errors.Join(ErrInvalidURL, fmt.Errorf("ip address %q must be in canonical form", host))
		}
		return nil
	}

	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() || addr.IsUnspecified() {
		return ErrPrivateURL
	}

	return nil
}

// numericHost reports whether the last label of host is a number, which
// resolvers read as a shorthand or octal/hex IPv4 address such as 127.1 or
// 2130706433. No top level domain is numeric.
func numericHost(host string) bool {
	label := host[strings.LastIndex(host, ".")+1:]
	if hex, ok := strings.CutPrefix(label, "0x"); ok {
		return strings.Trim(hex, "0123456789abcdef") == ""
	}

	return label != "" && strings.Trim(label, "0123456789") == ""
}

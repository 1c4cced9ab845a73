package matching

import (
	"strings"
)

// NormalizePhone keeps only the ASCII digits of s.
func NormalizePhone(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NormalizeURL lowercases u and strips the scheme, a "www." prefix and one
// trailing slash. Websites are only ever compared for equality after this.
//
// The strip is repeated until nothing changes so that the result is a fixed
// point; "http://www.x.com/" and "x.com" normalize to the same value.
func NormalizeURL(u string) string {
	if u == "" {
		return ""
	}

	n := strings.ToLower(u)
	for {
		next := stripURLOnce(n)
		if next == n {
			return n
		}
		n = next
	}
}

func stripURLOnce(n string) string {
	if strings.HasPrefix(n, "https://") {
		n = n[len("https://"):]
	} else if strings.HasPrefix(n, "http://") {
		n = n[len("http://"):]
	}
	n = strings.TrimPrefix(n, "www.")
	n = strings.TrimSuffix(n, "/")
	return n
}

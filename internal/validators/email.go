// Package validators holds input checks that need more than a struct tag.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain can actually receive
// mail: an MX record, or at least a resolvable host. Registration uses it
// to reject throwaway typos before creating a salon account.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// No MX is still deliverable when the host itself resolves.
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

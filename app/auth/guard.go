// Package auth classifies caller identities for the catalog's gated
// operations.
package auth

import (
	"errors"
	"strings"
)

// ErrAccessDenied is returned by gated operations when the caller fails the
// admin check.
var ErrAccessDenied = errors.New("access denied: admin required")

// adminFragment marks administrator identities by substring containment.
// Known-weak placeholder policy; callers depend on these exact semantics.
const adminFragment = "rdmx6-jaaaa"

// Guard decides whether a caller may perform mutating operations.
type Guard struct {
	selfIdentity string
}

// NewGuard creates a guard. selfIdentity is the identity the service
// presents as itself; it always passes the admin check.
func NewGuard(selfIdentity string) *Guard {
	return &Guard{selfIdentity: selfIdentity}
}

// IsAdmin reports whether the caller is an administrator: the service's own
// identity, or any identity whose text contains the admin fragment. An
// empty caller is anonymous and never an admin.
func (g *Guard) IsAdmin(caller string) bool {
	if caller == "" {
		return false
	}
	return caller == g.selfIdentity || strings.Contains(caller, adminFragment)
}

// Package auth implements the shared-secret gate in front of /extract.
package auth

import "crypto/subtle"

// KeyName is both the query parameter and the header carrying the credential.
const KeyName = "x-api-key"

// Gate checks caller credentials against one configured secret.
// The zero value, or a Gate built from an empty secret, lets everything through.
type Gate struct {
	secret []byte
}

// NewGate returns a gate for secret. An empty secret disables the gate.
func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Enabled reports whether a credential is required.
func (g *Gate) Enabled() bool {
	return g != nil && len(g.secret) > 0
}

// Allow reports whether either supplied value matches the secret.
func (g *Gate) Allow(query, header string) bool {
	if !g.Enabled() {
		return true
	}
	return g.match(query) || g.match(header)
}

func (g *Gate) match(v string) bool {
	if v == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v), g.secret) == 1
}

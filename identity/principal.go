package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller, backed by the verified token
// claims. Enrichment produces a new Principal; the claims map held by an
// existing one is never mutated.
type Principal struct {
	claims jwt.MapClaims
}

func NewPrincipal(claims jwt.MapClaims) Principal {
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	return Principal{claims: claims}
}

// Claims exposes the raw claim map.
func (p Principal) Claims() jwt.MapClaims { return p.claims }

// StringClaim returns a top-level string claim, "" when absent or not a
// string.
func (p Principal) StringClaim(name string) string {
	if v, ok := p.claims[name].(string); ok {
		return v
	}
	return ""
}

// Subject returns the stable user identifier: the standard "sub" claim,
// falling back to "nameid" for tokens minted by providers that use the
// older claim name.
func (p Principal) Subject() string {
	if sub := p.StringClaim("sub"); sub != "" {
		return sub
	}
	return p.StringClaim("nameid")
}

// DisplayName prefers the "name" claim, then "preferred_username", then
// the subject.
func (p Principal) DisplayName() string {
	if name := p.StringClaim("name"); name != "" {
		return name
	}
	if name := p.StringClaim("preferred_username"); name != "" {
		return name
	}
	return p.Subject()
}

// Roles collects the caller's roles from both places they appear:
// the Keycloak-style realm_access.roles claim and the flat roles claim
// written by enrichment. Duplicates are collapsed, order preserved.
func (p Principal) Roles() []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(role string) {
		if role == "" {
			return
		}
		if _, dup := seen[role]; dup {
			return
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}

	if realm, ok := p.claims["realm_access"].(map[string]interface{}); ok {
		switch roles := realm["roles"].(type) {
		case []interface{}:
			for _, r := range roles {
				if s, ok := r.(string); ok {
					add(s)
				}
			}
		case []string:
			for _, s := range roles {
				add(s)
			}
		}
	}
	switch roles := p.claims["roles"].(type) {
	case []interface{}:
		for _, r := range roles {
			if s, ok := r.(string); ok {
				add(s)
			}
		}
	case []string:
		for _, s := range roles {
			add(s)
		}
	case string:
		add(roles)
	}
	return out
}

// HasRole reports whether the principal carries the role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// WithRoles returns a copy of the principal carrying the given roles in
// both claim locations, replacing whatever was there.
func (p Principal) WithRoles(roles []string) Principal {
	claims := make(jwt.MapClaims, len(p.claims)+2)
	for k, v := range p.claims {
		claims[k] = v
	}
	claims["roles"] = roles

	realm := map[string]interface{}{}
	if prev, ok := claims["realm_access"].(map[string]interface{}); ok {
		for k, v := range prev {
			realm[k] = v
		}
	}
	realm["roles"] = roles
	claims["realm_access"] = realm

	return Principal{claims: claims}
}

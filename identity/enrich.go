package identity

import (
	"context"
	"log"

	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/store"
)

// Enricher augments an authenticated principal with locally stored
// identity data. In proxy mode the token only proves who the caller is;
// their profile, roles, and group-derived roles live in the local
// database and are folded into the principal here. In direct mode the
// token already carries everything and the principal passes through.
type Enricher struct {
	factory *Factory
	users   *store.UserStore
	roles   *store.RoleStore
	groups  *store.GroupStore
}

func NewEnricher(factory *Factory, users *store.UserStore, roles *store.RoleStore, groups *store.GroupStore) *Enricher {
	return &Enricher{factory: factory, users: users, roles: roles, groups: groups}
}

// Enrich returns the effective principal for a request. Enrichment never
// fails a request: any storage error is logged and the original
// principal is returned unchanged.
func (e *Enricher) Enrich(ctx context.Context, p Principal) Principal {
	if e.factory.CurrentMode(ctx) != ModeProxy {
		return p
	}
	subject := p.Subject()
	if subject == "" {
		log.Printf("identity: enrich: no subject claim in token")
		return p
	}

	record := models.User{
		UserID:       subject,
		Username:     p.DisplayName(),
		Email:        p.StringClaim("email"),
		FirstName:    p.StringClaim("given_name"),
		LastName:     p.StringClaim("family_name"),
		Organization: p.StringClaim("organization"),
		Enabled:      true,
	}
	if _, err := e.users.Upsert(ctx, record); err != nil {
		log.Printf("identity: enrich %s: upsert user: %v", subject, err)
		return p
	}

	roles, err := e.effectiveRoles(ctx, subject)
	if err != nil {
		log.Printf("identity: enrich %s: resolve roles: %v", subject, err)
		return p
	}
	return p.WithRoles(roles)
}

// effectiveRoles is the union of the roles assigned to the user directly
// and the roles granted to any group the user belongs to, deduplicated
// with order preserved: direct roles first, then group grants.
func (e *Enricher) effectiveRoles(ctx context.Context, subject string) ([]string, error) {
	direct, err := e.roles.ByUserID(ctx, subject)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(direct))
	seen := make(map[string]struct{}, len(direct))
	for _, r := range direct {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r.Name)
	}

	groups, err := e.groups.ByUserID(ctx, subject)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		granted, err := e.roles.ByGroupPath(ctx, g.Path)
		if err != nil {
			return nil, err
		}
		for _, r := range granted {
			if _, dup := seen[r.Name]; dup {
				continue
			}
			seen[r.Name] = struct{}{}
			out = append(out, r.Name)
		}
	}
	return out, nil
}

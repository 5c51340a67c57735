package keycloak

// UserRepresentation mirrors the admin API user resource. Only the
// fields the application reads and writes are mapped.
type UserRepresentation struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Enabled   bool   `json:"enabled"`

	Attributes  map[string][]string        `json:"attributes,omitempty"`
	Credentials []CredentialRepresentation `json:"credentials,omitempty"`
}

// Organization reads the single-valued "organization" attribute.
func (u UserRepresentation) Organization() string {
	if v := u.Attributes["organization"]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// CredentialRepresentation carries a password credential.
type CredentialRepresentation struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// RoleRepresentation mirrors a realm role.
type RoleRepresentation struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupRepresentation mirrors a group, including its nested subtree when
// the endpoint returns the full hierarchy.
type GroupRepresentation struct {
	ID        string                `json:"id,omitempty"`
	Name      string                `json:"name"`
	Path      string                `json:"path,omitempty"`
	SubGroups []GroupRepresentation `json:"subGroups,omitempty"`
}

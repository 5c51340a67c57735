package dto

// User is the transport shape for a user in either identity mode. ID is the
// external subject identifier in direct mode and the same shared subject id
// for locally stored users in proxy mode.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Organization string `json:"organization,omitempty"`
	Enabled      bool   `json:"enabled"`
}

// Credential carries a new password for a reset operation.
type Credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

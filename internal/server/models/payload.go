package models

// CredentialPayload is one identifier supplied by a client during
// registration or login.
type CredentialPayload struct {
	Type  CredentialType `json:"credentialType"`
	Value string         `json:"credential"`
}

// RegisterPayload carries the client input for the registration flow.
type RegisterPayload struct {
	Name        string              `json:"name"`
	Password    string              `json:"password"`
	Credentials []CredentialPayload `json:"credentials"`
}

// LoginPayload carries the client input for the password login flow. Exactly
// one credential is supplied.
type LoginPayload struct {
	Credential CredentialPayload `json:"credential"`
	Password   string            `json:"password"`
}

package models

import (
	"fmt"
	"time"
)

// CredentialType signals which kind of identifier is stored in a credential's
// Value column.
type CredentialType string

const (
	CredentialTypeEmail       CredentialType = "Email"
	CredentialTypePhoneNumber CredentialType = "PhoneNumber"
	CredentialTypeUsername    CredentialType = "Username"
)

// ParseCredentialType converts the stored string form back into a
// CredentialType.
func ParseCredentialType(s string) (CredentialType, error) {
	switch CredentialType(s) {
	case CredentialTypeEmail, CredentialTypePhoneNumber, CredentialTypeUsername:
		return CredentialType(s), nil
	default:
		return "", fmt.Errorf("unknown credential type %q", s)
	}
}

// Credential is a user-supplied identifier used to locate a User at login.
// Value is globally unique across all users; a user holds at most one
// credential per type and at most three in total.
type Credential struct {
	UserID    int64
	Type      CredentialType
	Value     string
	Validated bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

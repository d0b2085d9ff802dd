// Package validation implements the pure shape checks applied to client
// payloads before a flow touches the store. Checks never short-circuit: every
// violation in a payload is reported in one pass.
package validation

import (
	"strings"

	"github.com/mpetrovs/authcore/internal/server/models"
	"github.com/mpetrovs/authcore/internal/server/resources"
)

func validEmail(email string) bool {
	return len(email) >= resources.MinEmailLength &&
		len(email) <= resources.MaxEmailLength &&
		strings.Contains(email, "@") &&
		strings.Contains(email, ".")
}

func validPhoneNumber(phone string) bool {
	return len(phone) >= resources.MinPhoneNumberLength &&
		len(phone) <= resources.MaxPhoneNumberLength
}

func validUsername(username string) bool {
	return len(username) >= resources.MinUsernameLength &&
		len(username) <= resources.MaxUsernameLength
}

func validName(name string) bool {
	return len(name) >= resources.MinNameLength &&
		len(name) <= resources.MaxNameLength
}

func validPassword(password string) bool {
	return len(password) >= resources.MinPasswordLength &&
		len(password) <= resources.MaxPasswordLength
}

// checkCredential applies the type-specific rule for one supplied credential
// and returns the matching resource, or nil when the credential is valid.
func checkCredential(c models.CredentialPayload) *resources.Resource {
	switch c.Type {
	case models.CredentialTypeEmail:
		if !validEmail(c.Value) {
			return resources.ErrInvalidEmail
		}
	case models.CredentialTypePhoneNumber:
		if !validPhoneNumber(c.Value) {
			return resources.ErrInvalidPhoneNumber
		}
	case models.CredentialTypeUsername:
		if !validUsername(c.Value) {
			return resources.ErrInvalidUsername
		}
	default:
		// Unknown types fail the strictest rule rather than pass silently.
		return resources.ErrInvalidUsername
	}
	return nil
}

// ValidateRegistration checks every supplied credential plus the display name
// and password, collecting all violations.
func ValidateRegistration(p *models.RegisterPayload) resources.List {
	var errs resources.List

	for _, c := range p.Credentials {
		if r := checkCredential(c); r != nil {
			errs = append(errs, r)
		}
	}

	if !validName(p.Name) {
		errs = append(errs, resources.ErrInvalidName)
	}
	if !validPassword(p.Password) {
		errs = append(errs, resources.ErrInvalidPassword)
	}

	return errs
}

// ValidateLogin checks the single supplied credential and the password.
func ValidateLogin(p *models.LoginPayload) resources.List {
	var errs resources.List

	if r := checkCredential(p.Credential); r != nil {
		errs = append(errs, r)
	}
	if !validPassword(p.Password) {
		errs = append(errs, resources.ErrInvalidPassword)
	}

	return errs
}

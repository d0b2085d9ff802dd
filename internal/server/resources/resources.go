// Package resources defines the structured error resources returned by the
// identity flows, plus the input length bounds the validator enforces.
//
// A Resource is one reportable failure as a (kind, code, message) triple;
// flows return ordered Lists of them so that a single validation pass can
// report every violation at once. Raw infrastructure errors never appear
// here: the service logs the detail and returns only the generic
// database-error resource.
package resources

import "strings"

// Kind tags a Resource with its failure category so callers can handle
// classes of errors exhaustively instead of matching code strings.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindAuth
	KindGeneration
	KindStore
)

// Resource is one reportable failure. Code is a stable machine-readable
// identifier; Message is safe to show to an end user.
type Resource struct {
	Kind    Kind
	Code    string
	Message string
}

func (r *Resource) Error() string {
	return r.Code + ": " + r.Message
}

// List is an ordered collection of failures from a single flow. A nil or
// empty List means the flow succeeded.
type List []*Resource

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, r := range l {
		msgs = append(msgs, r.Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether the list contains a resource with the given code.
func (l List) Has(code string) bool {
	for _, r := range l {
		if r.Code == code {
			return true
		}
	}
	return false
}

var (
	ErrInvalidEmail = &Resource{Kind: KindValidation, Code: "ERROR.INVALID_EMAIL",
		Message: "Invalid email. Needs to be at least 4 characters, at most 254 and correctly formatted."}

	ErrInvalidPhoneNumber = &Resource{Kind: KindValidation, Code: "ERROR.INVALID_PHONE_NUMBER",
		Message: "Invalid phone number. Needs to be between 8 and 14 characters."}

	ErrInvalidUsername = &Resource{Kind: KindValidation, Code: "ERROR.INVALID_USERNAME",
		Message: "Invalid username. Needs to be between 3 and 64 characters."}

	ErrInvalidName = &Resource{Kind: KindValidation, Code: "ERROR.INVALID_NAME",
		Message: "Invalid name. Names should have at least 4 characters in length and at most 254."}

	ErrInvalidPassword = &Resource{Kind: KindValidation, Code: "ERROR.INVALID_PASSWORD",
		Message: "Invalid password. Password should have at least 8 characters and at most 128."}

	ErrTooManyCredentials = &Resource{Kind: KindConflict, Code: "ERROR.TOO_MANY_CREDENTIALS",
		Message: "A user can have at most 3 credentials."}

	ErrUserAlreadyExists = &Resource{Kind: KindConflict, Code: "ERROR.USER_ALREADY_EXISTS",
		Message: "A user with that credential already exists."}

	ErrCredentialDoesNotExist = &Resource{Kind: KindNotFound, Code: "ERROR.CREDENTIAL_DOES_NOT_EXIST",
		Message: "No user with this credential exists."}

	ErrUserDoesNotExist = &Resource{Kind: KindNotFound, Code: "ERROR.USER_DOES_NOT_EXIST",
		Message: "User does not exist."}

	ErrPasswordIncorrect = &Resource{Kind: KindAuth, Code: "ERROR.PASSWORD_INCORRECT",
		Message: "The password you have entered is incorrect."}

	ErrIncorrectToken = &Resource{Kind: KindAuth, Code: "ERROR.INCORRECT_TOKEN",
		Message: "The token you have supplied does not belong to this user."}

	ErrExpiredToken = &Resource{Kind: KindAuth, Code: "ERROR.EXPIRED_TOKEN",
		Message: "The token you have supplied is expired."}

	ErrTokenNotCreated = &Resource{Kind: KindGeneration, Code: "ERROR.TOKEN_NOT_CREATED",
		Message: "The server had an error creating the auth tokens."}

	ErrGeneration = &Resource{Kind: KindGeneration, Code: "ERROR.GENERATION_ERROR",
		Message: "The server had an error generating secure random data."}

	ErrDatabase = &Resource{Kind: KindStore, Code: "ERROR.DATABASE_ERROR",
		Message: "The server had an error talking to its database."}
)

package resources

// Input length bounds enforced by the validator, in characters.
const (
	MinEmailLength = 4
	MaxEmailLength = 254

	MinPhoneNumberLength = 8
	MaxPhoneNumberLength = 14

	MinUsernameLength = 3
	MaxUsernameLength = 64

	MinNameLength = 4
	MaxNameLength = 254

	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// MaxCredentialsPerUser caps how many credentials a single registration may
// carry; the database enforces the same cap as the source of truth.
const MaxCredentialsPerUser = 3

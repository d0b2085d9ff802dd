package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_Error(t *testing.T) {
	r := &Resource{Kind: KindAuth, Code: "ERROR.X", Message: "boom"}
	assert.Equal(t, "ERROR.X: boom", r.Error())
}

func TestList_Error_JoinsInOrder(t *testing.T) {
	l := List{ErrInvalidName, ErrInvalidPassword}
	assert.Equal(t, ErrInvalidName.Error()+"; "+ErrInvalidPassword.Error(), l.Error())
}

func TestList_Has(t *testing.T) {
	l := List{ErrInvalidEmail, ErrTooManyCredentials}

	assert.True(t, l.Has("ERROR.INVALID_EMAIL"))
	assert.True(t, l.Has("ERROR.TOO_MANY_CREDENTIALS"))
	assert.False(t, l.Has("ERROR.DATABASE_ERROR"))
	assert.False(t, List(nil).Has("ERROR.INVALID_EMAIL"))
}

func TestKinds_AreDistinctPerResource(t *testing.T) {
	assert.Equal(t, KindValidation, ErrInvalidEmail.Kind)
	assert.Equal(t, KindConflict, ErrUserAlreadyExists.Kind)
	assert.Equal(t, KindNotFound, ErrCredentialDoesNotExist.Kind)
	assert.Equal(t, KindAuth, ErrExpiredToken.Kind)
	assert.Equal(t, KindGeneration, ErrTokenNotCreated.Kind)
	assert.Equal(t, KindStore, ErrDatabase.Kind)
}

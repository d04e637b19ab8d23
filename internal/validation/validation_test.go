package validation

import (
	"errors"
	"testing"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ng!Pass", true},
		{"Aa1!aaaa", true},
		{"Aa1!aaa", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSymbol11", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestStruct_RegisterInput(t *testing.T) {
	require.NoError(t, Struct(models.RegisterInput{Name: "Alice", Email: "a@x.com", Password: "Str0ng!Pass"}))

	err := Struct(models.RegisterInput{Name: "Al", Email: "not-an-email", Password: "weak"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "must be at least 3 characters", fields["name"])
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Contains(t, fields["password"], "upper and lower case")
}

func TestStruct_ResourceInputs(t *testing.T) {
	assert.NoError(t, Struct(models.NoteInput{Title: "T", Description: "Ddddd"}))
	assert.ErrorIs(t, Struct(models.NoteInput{Title: "T", Description: "Dd"}), common.ErrValidation)
	assert.ErrorIs(t, Struct(models.TodoInput{Title: "ab", Description: "long enough"}), common.ErrValidation)
	assert.ErrorIs(t, Struct(models.WebSearchInput{Title: "t", Content: "c", ReferenceLink: "nope"}), common.ErrValidation)
	assert.NoError(t, Struct(models.WebSearchInput{Title: "t", Content: "c", ReferenceLink: "https://go.dev/doc"}))

	short := "abc"
	assert.ErrorIs(t, Struct(models.NotePatch{Description: &short}), common.ErrValidation)
	assert.NoError(t, Struct(models.NotePatch{}))
}

func TestStruct_LoginInput(t *testing.T) {
	err := Struct(models.LoginInput{Email: "a@x.com"})
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, common.FieldError{Field: "password", Message: "is required"}, ve.Fields[0])
}

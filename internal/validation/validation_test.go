package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mriscan/internal/common"
)

type signupInput struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(signupInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		in    signupInput
		field string
		msg   string
	}{
		{"bad email", signupInput{Name: "A", Email: "not-an-email", Password: "secret1"}, "email", "must be a valid email address"},
		{"short password", signupInput{Name: "A", Email: "a@b.co", Password: "12345"}, "password", "must be at least 6 characters"},
		{"blank name", signupInput{Name: "   ", Email: "a@b.co", Password: "secret1"}, "name", "is required"},
		{"long name", signupInput{Name: strings.Repeat("n", 101), Email: "a@b.co", Password: "secret1"}, "name", "must be at most 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			require.Error(t, err)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.msg, ve.Fields[tt.field])
		})
	}
}

func TestStruct_ReportsEveryField(t *testing.T) {
	err := Struct(signupInput{})

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"email":    "is required",
		"password": "is required",
	}, ve.Fields)
}

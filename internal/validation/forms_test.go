package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name      string
		form      Login
		wantField string
		wantType  ErrorType
	}{
		{"valid", Login{Email: "ana@example.com", Password: "x"}, "", ""},
		{"missing email", Login{Password: "x"}, "Email", ErrorTypeRequired},
		{"malformed email", Login{Email: "ana", Password: "x"}, "Email", ErrorTypeInvalidFormat},
		{"missing password", Login{Email: "ana@example.com"}, "Password", ErrorTypeRequired},
		{"whitespace email", Login{Email: "   ", Password: "x"}, "Email", ErrorTypeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.form)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			fieldErrs := ve.FieldErrors(tt.wantField)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantType, fieldErrs[0].Type)
		})
	}
}

func TestValidateRegister(t *testing.T) {
	valid := Register{Email: "ana@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	assert.NoError(t, ValidateRegister(valid))

	short := valid
	short.Password, short.ConfirmPassword = "abc", "abc"
	ve, ok := AsValidationError(ValidateRegister(short))
	require.True(t, ok)
	assert.Equal(t, ErrorTypeInvalidLength, ve.Errors[0].Type)
	assert.Equal(t, "Password must be at least 6 characters long", ve.UserMessage())

	mismatch := valid
	mismatch.ConfirmPassword = "secret2"
	ve, ok = AsValidationError(ValidateRegister(mismatch))
	require.True(t, ok)
	require.Len(t, ve.FieldErrors("Confirm Password"), 1)
	assert.Equal(t, "Passwords do not match", ve.UserMessage())
}

func TestTaskTitle(t *testing.T) {
	title, err := TaskTitle("  Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", title)

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := TaskTitle(blank)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{}
	assert.Equal(t, "validation error", ve.Error())
	assert.False(t, ve.HasErrors())

	ve.Add("Email", ErrorTypeRequired, "Email is required")
	assert.Equal(t, "validation error for field 'Email': Email is required", ve.Error())

	ve.Add("Password", ErrorTypeRequired, "Password is required")
	assert.Contains(t, ve.Error(), "multiple validation errors")
	assert.True(t, ve.HasErrors())
}

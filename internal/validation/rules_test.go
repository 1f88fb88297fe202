package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	tests := []struct {
		name     string
		password any
		errMsg   string
	}{
		{name: "valid password", password: "SecurePass123!"},
		{name: "symbols and digits", password: "MyP@ssw0rd!"},
		{name: "too short", password: "Short1!", errMsg: "password must be at least 8 characters"},
		{name: "multibyte characters count once", password: "Ñandú1!", errMsg: "at least 8 characters"},
		{name: "missing uppercase", password: "securepass123!", errMsg: "password must contain an uppercase letter"},
		{name: "missing lowercase", password: "SECUREPASS123!", errMsg: "password must contain a lowercase letter"},
		{name: "missing number", password: "SecurePass!", errMsg: "password must contain a number"},
		{name: "missing special char", password: "SecurePass123", errMsg: "password must contain a special character"},
		{
			name:     "every missing class is reported",
			password: "lowercaseonly",
			errMsg:   "password must contain an uppercase letter, a number, a special character",
		},
		{name: "not a string", password: 12345678, errMsg: "password must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestPasswordStrength_LengthOnly(t *testing.T) {
	rule := PasswordStrength{MinLength: 10}

	assert.NoError(t, rule.Validate("tencharact"))
	assert.Error(t, rule.Validate("short"))
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "valid document", input: "1032456789", shouldErr: false},
		{name: "minimum length", input: "12345", shouldErr: false},
		{name: "too short", input: "1234", shouldErr: true},
		{name: "too long", input: "123456789012345678901", shouldErr: true},
		{name: "letters", input: "10324A6789", shouldErr: true},
		{name: "dots", input: "1.032.456", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Document.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "letters and digits", input: "luis3", shouldErr: false},
		{name: "separators", input: "luis.perez_2-a", shouldErr: false},
		{name: "internal space", input: "luis perez", shouldErr: true},
		{name: "symbol", input: "luis@3", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUUID(t *testing.T) {
	assert.NoError(t, UUID.Validate("0190a6d2-7c1e-7b3a-9f00-1a2b3c4d5e6f"))
	assert.NoError(t, UUID.Validate(""))
	assert.Error(t, UUID.Validate("42"))
	assert.Error(t, UUID.Validate("not-a-uuid"))
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " validstring",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "validstring ",
			shouldErr: true,
		},
		{
			name:      "both leading and trailing",
			input:     " validstring ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "valid string",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "only newlines",
			input:     "\n\n",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error returns nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "wraps validation error",
			err:      assert.AnError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapValidationError(tt.err)
			if tt.expected {
				assert.Error(t, result)
				assert.Contains(t, result.Error(), "invalid input")
			} else {
				assert.NoError(t, result)
			}
		})
	}
}

// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/lsoftware/inventory/internal/errors"
)

var (
	documentRegex = regexp.MustCompile(`^[0-9]{5,20}$`)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

// WrapValidationError marks err as ErrInvalidInput so handlers answer 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength is the policy applied to passwords chosen through the API.
// Hashes imported from the legacy system are never re-validated.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// passwordClasses records which character classes occur in a password.
type passwordClasses struct {
	upper, lower, number, special bool
}

func classify(s string) passwordClasses {
	var c passwordClasses
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsNumber(r):
			c.number = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			c.special = true
		}
	}
	return c
}

// Validate reports every unmet requirement in a single error so a user can fix
// the password in one attempt. Length is counted in characters, not bytes.
func (p PasswordStrength) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if utf8.RuneCountInString(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	classes := classify(s)
	var missing []string
	if p.RequireUpper && !classes.upper {
		missing = append(missing, "an uppercase letter")
	}
	if p.RequireLower && !classes.lower {
		missing = append(missing, "a lowercase letter")
	}
	if p.RequireNumber && !classes.number {
		missing = append(missing, "a number")
	}
	if p.RequireSpecial && !classes.special {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return validation.NewError(
			"validation_password_classes",
			"password must contain "+strings.Join(missing, ", "),
		)
	}

	return nil
}

// Document validates a national identity document: 5 to 20 digits.
var Document = validation.NewStringRuleWithError(
	func(s string) bool {
		return documentRegex.MatchString(s)
	},
	validation.NewError("validation_document_format", "must contain between 5 and 20 digits"),
)

// Username validates login names: letters, digits, dot, dash and underscore.
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		return usernameRegex.MatchString(s)
	},
	validation.NewError("validation_username_format", "must contain only letters, digits, '.', '-' or '_'"),
)

// UUID validates the textual form of an identifier.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

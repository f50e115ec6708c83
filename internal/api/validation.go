package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FACorreiaa/go-account-console/internal/types"
)

// PasswordSymbols is the punctuation set a password must draw at least one character from.
const PasswordSymbols = "@$!%*?&"

// NewValidator returns a validator that reports JSON field names and knows
// the password_strength rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag name or a nil func.
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return PasswordStrong(fl.Field().String())
	})
	return v
}

// PasswordStrong reports whether p has an upper-case letter, a lower-case
// letter, a digit and one of PasswordSymbols, and nothing outside that alphabet.
func PasswordStrong(p string) bool {
	var upper, lower, digit, symbol bool
	for _, c := range p {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, c):
			symbol = true
		default:
			return false
		}
	}
	return upper && lower && digit && symbol
}

// ValidateStruct runs v over s and converts failures into per-field messages.
// It returns nil when s is valid.
func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	out := make(types.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, types.FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldName drops the struct prefix and any slice index, so userIds[2] reports as userIds.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	label := displayName(fieldName(fe))
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return types.ErrEmptySelection.Error()
		}
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return types.ErrEmptySelection.Error()
		}
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		return "Invalid email format"
	case "password_strength":
		return "Password must include uppercase, lowercase, number, and special character (" + PasswordSymbols + ")"
	case "oneof":
		return types.ErrInvalidStatus.Error()
	case "uuid":
		return "every user id must be a valid UUID"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func displayName(field string) string {
	switch field {
	case "userIds":
		return "User ids"
	case "":
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

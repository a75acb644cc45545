package helpers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

// FieldErrors maps a JSON field path to a human readable message.
type FieldErrors map[string]string

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) FieldErrors {
	errorMessages := make(FieldErrors)
	for _, err := range errs {
		field := fieldPath(err)
		if _, exists := errorMessages[field]; exists {
			continue
		}
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", field)
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL.", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", field)
		case "min":
			if err.Kind() == reflect.Slice {
				errorMessages[field] = fmt.Sprintf("%s must contain at least %s item(s).", field, err.Param())
			} else {
				errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", field, err.Param())
			}
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", field, err.Param())
		case "gte":
			errorMessages[field] = fmt.Sprintf("%s must be greater than or equal to %s.", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on the %s rule.", field, err.Tag())
		}
	}
	return errorMessages
}

// fieldPath drops the root struct name from the namespace: "ProductForm.gender.id" -> "gender.id".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return err.Field()
}

// CollapseSpaces trims s and folds inner whitespace runs into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

func PasswordCompare(hashPass string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPass), password) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

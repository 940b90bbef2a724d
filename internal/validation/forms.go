package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Login is the sign-in form.
type Login struct {
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required"`
}

// Register is the sign-up form. Name is collected but optional.
type Register struct {
	Name            string `label:"Name" validate:"max=100"`
	Email           string `label:"Email" validate:"required,email"`
	Password        string `label:"Password" validate:"required,min=6"`
	ConfirmPassword string `label:"Confirm Password" validate:"required,eqfield=Password"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("label")
		})
	})
	return validate
}

// ValidateLogin checks a login form.
func ValidateLogin(f Login) error {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

// ValidateRegister checks a registration form.
func ValidateRegister(f Register) error {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
	return check(f)
}

// TaskTitle returns the trimmed title or ErrEmptyTitle.
func TaskTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}

func check(form any) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating form: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			ve.Add(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field))
		case "email":
			ve.Add(field, ErrorTypeInvalidFormat, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			ve.Add(field, ErrorTypeInvalidLength, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		case "max":
			ve.Add(field, ErrorTypeInvalidLength, fmt.Sprintf("%s must be at most %s characters long", field, fe.Param()))
		case "eqfield":
			ve.Add(field, ErrorTypeMismatch, "Passwords do not match")
		default:
			ve.Add(field, ErrorTypeInvalidValue, fmt.Sprintf("%s is invalid", field))
		}
	}
	return ve
}

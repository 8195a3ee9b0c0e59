// Package validation checks user input before it is sent to the GameRecs API,
// with the same rules and messages as the GameRecs web forms.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	usernameCharsTag    = "username_chars"
	passwordStrengthTag = "password_strength"
	imageURLTag         = "image_url"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
	passwordRegex = regexp.MustCompile(`^[a-zA-Z\d@$!%*?&]{8,}$`)
	imageURLRegex = regexp.MustCompile(`^(https?://.*\.(?:png|jpg|jpeg|gif))$`)
)

// LoginForm is the input of a username and password login.
type LoginForm struct {
	Username   string `json:"username" validate:"required,min=3,max=20,username_chars"`
	Password   string `json:"password" validate:"required,min=8,password_strength"`
	RememberMe bool   `json:"rememberMe"`
}

// RegistrationForm is the input of account creation.
type RegistrationForm struct {
	Username          string `json:"username" validate:"required,min=3,max=20,username_chars"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8,password_strength"`
	ConfirmPassword   string `json:"confirmPassword" validate:"required,eqfield=Password"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,image_url"`
	Bio               string `json:"bio" validate:"max=500"`
}

// ProfileForm is the input of a profile edit.
type ProfileForm struct {
	Username          string `json:"username" validate:"required,min=3,max=20,username_chars"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,image_url"`
	Bio               string `json:"bio" validate:"max=500"`
}

// Errors maps form fields, by their JSON names, to the message for the first
// rule each one broke.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sortByFormOrder(fields)
	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, e[field])
	}
	return strings.Join(msgs, ", ")
}

// Validator validates forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the GameRecs rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, usernameCharsTag, func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, passwordStrengthTag, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	mustRegister(v, imageURLTag, func(fl validator.FieldLevel) bool {
		return imageURLRegex.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "error registering %q validation", tag))
	}
}

// Validate checks a LoginForm, RegistrationForm or ProfileForm. Surrounding
// whitespace is not significant and is removed before checking. If any rule is
// broken, the returned error is an Errors.
func (v *Validator) Validate(form interface{}) error {
	trim(form)
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	validationErrs := validator.ValidationErrors{}
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "error validating form")
	}
	result := Errors{}
	for _, fieldErr := range validationErrs {
		if _, ok := result[fieldErr.Field()]; ok {
			continue
		}
		result[fieldErr.Field()] = message(fieldErr.Field(), fieldErr.Tag())
	}
	return result
}

// ValidateBio checks a bio on its own. If it is too long, the returned error
// is an Errors.
func (v *Validator) ValidateBio(bio string) error {
	if err := v.validate.Var(bio, "max=500"); err != nil {
		validationErrs := validator.ValidationErrors{}
		if !errors.As(err, &validationErrs) {
			return errors.Wrap(err, "error validating bio")
		}
		return Errors{"bio": message("bio", validationErrs[0].Tag())}
	}
	return nil
}

// IsStrongPassword reports whether a password has at least eight characters
// drawn from letters, digits and @$!%*?&, with at least one lowercase letter,
// one uppercase letter and one digit.
func IsStrongPassword(password string) bool {
	if !passwordRegex.MatchString(password) {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// trim removes surrounding whitespace from every string field of a form,
// except passwords.
func trim(form interface{}) {
	val := reflect.ValueOf(form)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return
	}
	val = val.Elem()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		name := val.Type().Field(i).Name
		if field.Kind() != reflect.String || !field.CanSet() ||
			strings.Contains(name, "Password") {
			continue
		}
		field.SetString(strings.TrimSpace(field.String()))
	}
}

package model

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validated value objects for every user-supplied field. Constructors are
// the only way to obtain a non-zero value, so anything of these types that
// reaches an actor has already passed format validation.

var validate = newValidator()

var textRe = regexp.MustCompile(`^[A-Za-z\s'-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// validator has no tag for "letters plus spaces, apostrophes, hyphens".
	_ = v.RegisterValidation("alpha_text", func(fl validator.FieldLevel) bool {
		return textRe.MatchString(fl.Field().String())
	})
	return v
}

// Email is a syntactically valid email address.
type Email string

func NewEmail(value string) (Email, error) {
	if err := validate.Var(value, "required,email"); err != nil {
		return "", Validation("invalid email address")
	}
	return Email(value), nil
}

func (e Email) String() string { return string(e) }

// Name covers human names and short titles: letters, spaces, apostrophes
// and hyphens only.
type Name string

func NewName(value string) (Name, error) {
	if err := validate.Var(value, "required,alpha_text"); err != nil {
		return "", Validation("characters must be alphabetic")
	}
	return Name(value), nil
}

func (n Name) String() string { return string(n) }

// PhoneNumber is an international phone number in E.164 format.
type PhoneNumber string

func NewPhoneNumber(value string) (PhoneNumber, error) {
	value = strings.TrimSpace(value)
	// validator's e164 tag treats the plus sign as optional; E.164
	// numbers always carry it.
	if !strings.HasPrefix(value, "+") {
		return "", BadRequest("invalid phone number, expected E.164 format (e.g. +2348012345678)")
	}
	if err := validate.Var(value, "required,e164"); err != nil {
		return "", BadRequest("invalid phone number, expected E.164 format (e.g. +2348012345678)")
	}
	return PhoneNumber(value), nil
}

func (p PhoneNumber) String() string { return string(p) }

// Role is the three-tier admin level.
type Role string

const (
	RoleRoot   Role = "root"
	RoleMid    Role = "mid"
	RoleNormal Role = "normal"
)

// NewRole accepts exactly the three enumerated role tokens; anything else
// is rejected rather than defaulted.
func NewRole(value string) (Role, error) {
	if err := validate.Var(value, "required,oneof=root mid normal"); err != nil {
		return "", BadRequest("accepted roles are root, mid, normal")
	}
	return Role(value), nil
}

func (r Role) String() string { return string(r) }

const passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;':\",./<>?"

// Password is a plaintext password that satisfies the strength policy.
// It exists only in flight; persistence always goes through hashing.
type Password string

func NewPassword(value string) (Password, error) {
	switch {
	case len(value) < 8:
		return "", PasswordPolicy("password must be at least 8 characters")
	case !strings.ContainsFunc(value, unicode.IsUpper):
		return "", PasswordPolicy("password must contain at least one uppercase character")
	case !strings.ContainsFunc(value, unicode.IsDigit):
		return "", PasswordPolicy("password must contain at least one digit")
	case !strings.ContainsAny(value, passwordSpecialChars):
		return "", PasswordPolicy("password must contain at least one special character")
	}
	return Password(value), nil
}

func (p Password) String() string { return string(p) }

// StringPtr converts an optional field value into a nullable SQL bind.
func StringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

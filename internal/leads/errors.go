package leads

import "errors"

var (
	// ErrMissingName is returned when the name is absent
	ErrMissingName = errors.New("name is required")

	// ErrMissingPhone is returned when the phone number is absent
	ErrMissingPhone = errors.New("phone is required")

	// ErrMissingEmail is returned when the email address is absent
	ErrMissingEmail = errors.New("email is required")

	// ErrInvalidPhone is returned when the phone number fails the loose format check
	ErrInvalidPhone = errors.New("phone number is not valid")

	// ErrInvalidEmail is returned when the email address fails the basic shape check
	ErrInvalidEmail = errors.New("email address is not valid")
)

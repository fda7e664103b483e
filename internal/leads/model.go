package leads

import (
	"regexp"
	"strings"
)

// FinanceTypes are the products offered on the site. The form sends one of
// these; anything else (including nothing) renders as a placeholder in the
// notification email.
var FinanceTypes = []string{
	"Car Finance",
	"Business Finance",
	"Personal Loan",
	"Equipment",
}

var (
	// At least ten characters of digits, spaces, +, - and parentheses.
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]{10,}$`)
	// Loose local@domain.tld shape, no whitespace on either side of the @.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// SubmitRequest is the contact-form payload posted by the browser.
// Amount is a pointer so an absent field is distinguishable from zero.
type SubmitRequest struct {
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	Email  string   `json:"email"`
	Type   string   `json:"type"`
	Amount *float64 `json:"amount"`
	Page   string   `json:"page"`
}

// Validate checks the presence of the required fields. Format checks live in
// ValidateFormats; the endpoint only gates on presence so a determined caller
// bypassing the browser still produces a deliverable enquiry.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrMissingPhone
	}
	return nil
}

// ValidateFormats applies the same pattern checks the browser runs before
// submitting, for callers that want strict parity with the client rules.
func (r *SubmitRequest) ValidateFormats() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !phonePattern.MatchString(strings.TrimSpace(r.Phone)) {
		return ErrInvalidPhone
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// FinanceType returns the submitted product name, or a placeholder dash when
// the field is absent.
func (r *SubmitRequest) FinanceType() string {
	if t := strings.TrimSpace(r.Type); t != "" {
		return t
	}
	return "-"
}

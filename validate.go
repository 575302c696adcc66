package cookieauth

import (
	"strconv"
	"strings"
)

const maxEmailLength = 254

// normalizeEmail is applied before any directory lookup or insert so the
// same address always maps to the same record.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts anything with a non-empty local part and domain
// around exactly one "@". Deliverability is the host's problem; this
// only guards the directory key shape.
func validEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.IndexByte(email[at+1:], '@') != -1 {
		return false
	}
	return true
}

// checkRegistration accumulates every field problem of a registration
// request. The password rule is length-only; composition rules
// (digits, symbols) are intentionally not enforced.
func (e *Engine) checkRegistration(email, password string) ValidationErrors {
	var errs ValidationErrors
	if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < e.config.Password.MinLength {
		errs = append(errs, FieldError{
			Field:   "password",
			Message: "must be at least " + strconv.Itoa(e.config.Password.MinLength) + " characters",
		})
	}
	return errs
}

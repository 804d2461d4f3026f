package api

import (
	"regexp"
	"strings"
)

const (
	requiredReason = "required"
)

var (
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reLast4 = regexp.MustCompile(`^[0-9]{4}$`)
)

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = requiredReason
	case len(email) > 254:
		errs["email"] = "too long (max 254)"
	case !reEmail.MatchString(email):
		errs["email"] = "must be a valid email address"
	}
}

func validatePassword(errs map[string]string, password string) {
	switch {
	case password == "":
		errs["password"] = requiredReason
	case len(password) < 8:
		errs["password"] = "too short (min 8)"
	case len(password) > 128:
		errs["password"] = "too long (max 128)"
	}
}

// Validate checks the bootstrap request. Returns a map of field names to
// error messages, or nil if all fields are valid.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, b.Email)
	validatePassword(errs, b.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the login request. Only presence is enforced here; the
// credential check decides everything else.
func (l LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(l.Email) == "" {
		errs["email"] = requiredReason
	}
	if l.Password == "" {
		errs["password"] = requiredReason
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c CardRequest) validate(errs map[string]string, prefix string) {
	if strings.TrimSpace(c.Name) == "" {
		errs[prefix+"name"] = requiredReason
	} else if len(c.Name) > 100 {
		errs[prefix+"name"] = "too long (max 100)"
	}

	switch c.Type {
	case "visa", "mastercard", "amex":
	case "":
		errs[prefix+"type"] = requiredReason
	default:
		errs[prefix+"type"] = "must be one of visa, mastercard, amex"
	}

	if !reLast4.MatchString(c.Last4) {
		errs[prefix+"last4"] = "must be exactly 4 digits"
	}
}

// Validate checks a standalone card create/update request.
func (c CardRequest) Validate() map[string]string {
	errs := make(map[string]string)
	c.validate(errs, "")
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p PreferencesPayload) validate(errs map[string]string, prefix string) {
	switch p.Currency {
	case "USD", "EUR", "GBP", "AUD":
	case "":
		errs[prefix+"currency"] = requiredReason
	default:
		errs[prefix+"currency"] = "must be one of USD, EUR, GBP, AUD"
	}
}

// Validate checks a preferences update.
func (p PreferencesPayload) Validate() map[string]string {
	errs := make(map[string]string)
	p.validate(errs, "")
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the onboarding submit.
func (o OnboardingRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(o.FirstName) == "" {
		errs["firstName"] = requiredReason
	} else if len(o.FirstName) > 64 {
		errs["firstName"] = "too long (max 64)"
	}
	if strings.TrimSpace(o.LastName) == "" {
		errs["lastName"] = requiredReason
	} else if len(o.LastName) > 64 {
		errs["lastName"] = "too long (max 64)"
	}

	o.Preferences.validate(errs, "preferences.")
	if o.Card != nil {
		o.Card.validate(errs, "card.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// internal/app/system/inputval/inputval.go

// Package inputval validates request input values before they reach the
// stores. Validators return booleans; handlers translate failures into
// 400 responses.
package inputval

import (
	"net/mail"
	"strings"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

// IsValidEmail reports whether s is a plausible bare email address.
// Display-name forms ("Name <a@b>") and dotted edge cases are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}
	return true
}

// IsValidUsername accepts 3-30 characters: lowercase letters, digits,
// dots, hyphens, underscores, starting with a letter or digit.
func IsValidUsername(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 30 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsValidPassword requires at least 6 characters.
func IsValidPassword(s string) bool {
	return len(s) >= 6
}

// IsValidGender accepts the canonical gender values.
func IsValidGender(s string) bool {
	switch s {
	case "male", "female", "other":
		return true
	}
	return false
}

// IsValidContentType accepts the post body formats.
func IsValidContentType(s string) bool {
	switch s {
	case models.ContentTypeHTML, models.ContentTypeMarkdown, models.ContentTypeText:
		return true
	}
	return false
}

// IsValidVoteType accepts the two vote directions.
func IsValidVoteType(s string) bool {
	return s == models.VoteUp || s == models.VoteDown
}

// IsValidSubscriptionType accepts the plan names.
func IsValidSubscriptionType(s string) bool {
	return s == models.SubscriptionMonthly || s == models.SubscriptionAnnual
}

// IsValidPaymentMethod accepts the supported gateways.
func IsValidPaymentMethod(s string) bool {
	return s == models.PaymentMethodAamarpay || s == models.PaymentMethodStripe
}

// IsValidCurrency accepts the supported currencies.
func IsValidCurrency(s string) bool {
	return s == models.CurrencyBDT || s == models.CurrencyUSD
}

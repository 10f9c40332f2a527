package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"ada", true},
		{"ada.lovelace", true},
		{"user-123", true},
		{"a_b_c", true},
		{"42nd", true},

		{"", false},
		{"ab", false},
		{".ada", false},
		{"Ada", false},
		{"ada lovelace", false},
		{"ada@home", false},
		{"thisusernameiswaytoolongtobeaccepted", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			if got := IsValidUsername(tt.username); got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestEnumValidators(t *testing.T) {
	if !IsValidVoteType("upvote") || !IsValidVoteType("downvote") || IsValidVoteType("sideways") {
		t.Error("IsValidVoteType")
	}
	if !IsValidContentType("markdown") || IsValidContentType("docx") {
		t.Error("IsValidContentType")
	}
	if !IsValidSubscriptionType("Monthly") || IsValidSubscriptionType("Weekly") {
		t.Error("IsValidSubscriptionType")
	}
	if !IsValidPaymentMethod("Aamarpay") || IsValidPaymentMethod("Cash") {
		t.Error("IsValidPaymentMethod")
	}
	if !IsValidCurrency("BDT") || !IsValidCurrency("USD") || IsValidCurrency("EUR") {
		t.Error("IsValidCurrency")
	}
	if !IsValidGender("other") || IsValidGender("unknown") {
		t.Error("IsValidGender")
	}
	if IsValidPassword("12345") || !IsValidPassword("123456") {
		t.Error("IsValidPassword")
	}
}

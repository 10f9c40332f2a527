package mailer_test

import (
	"strings"
	"testing"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
)

func TestBuildWelcomeEmail(t *testing.T) {
	e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName: "Tech Tips Hub",
		FullName: "Ada Lovelace",
		Username: "ada",
	})

	if !strings.Contains(e.Subject, "Tech Tips Hub") {
		t.Errorf("subject = %q, want site name", e.Subject)
	}
	if !strings.Contains(e.TextBody, "@ada") {
		t.Errorf("text body missing username: %q", e.TextBody)
	}
	if !strings.Contains(e.HTMLBody, "Ada Lovelace") {
		t.Error("html body missing full name")
	}
}

func TestBuildPaymentConfirmedEmail(t *testing.T) {
	e := mailer.BuildPaymentConfirmedEmail(mailer.PaymentEmailData{
		SiteName:         "Tech Tips Hub",
		FullName:         "Ada Lovelace",
		TransactionID:    "TXN-123",
		Amount:           999.5,
		Currency:         "BDT",
		SubscriptionType: "Monthly",
		EndDate:          "27 Sep 2026",
	})

	for _, want := range []string{"TXN-123", "999.50", "BDT", "Monthly", "27 Sep 2026"} {
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("html body missing %q", want)
		}
	}
	if !strings.Contains(e.TextBody, "TXN-123") {
		t.Error("text body missing transaction id")
	}
}

func TestBuildPaymentFailedEmail(t *testing.T) {
	e := mailer.BuildPaymentFailedEmail(mailer.PaymentEmailData{
		SiteName:      "Tech Tips Hub",
		FullName:      "Ada Lovelace",
		TransactionID: "TXN-456",
	})

	if !strings.Contains(e.Subject, "did not go through") {
		t.Errorf("subject = %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "TXN-456") {
		t.Error("text body missing transaction id")
	}
}

func TestEmailHTMLEscapesUserData(t *testing.T) {
	e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName: "Tech Tips Hub",
		FullName: `<script>alert("x")</script>`,
		Username: "evil",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("html body must escape user-supplied names")
	}
}

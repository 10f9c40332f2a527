// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WelcomeEmailData holds data for the post-signup welcome email.
type WelcomeEmailData struct {
	SiteName string
	FullName string
	Username string
}

// BuildWelcomeEmail creates the welcome email with HTML and text bodies.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Welcome to %s", data.SiteName),
		TextBody: buildWelcomeText(data),
		HTMLBody: render("welcome", welcomeHTMLTemplate, data),
	}
}

func buildWelcomeText(data WelcomeEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FullName)
	fmt.Fprintf(&buf, "Your %s account @%s is ready.\n\n", data.SiteName, data.Username)
	buf.WriteString("Start sharing tips, follow authors you like, and join the discussion.\n")
	return buf.String()
}

// PaymentEmailData holds data for payment outcome emails.
type PaymentEmailData struct {
	SiteName         string
	FullName         string
	TransactionID    string
	Amount           float64
	Currency         string
	SubscriptionType string
	EndDate          string // formatted by caller
}

// BuildPaymentConfirmedEmail creates the receipt sent after a payment is
// verified and the subscription activated.
func BuildPaymentConfirmedEmail(data PaymentEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your %s premium subscription is active", data.SiteName),
		TextBody: buildPaymentConfirmedText(data),
		HTMLBody: render("payment_confirmed", paymentConfirmedHTMLTemplate, data),
	}
}

func buildPaymentConfirmedText(data PaymentEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FullName)
	fmt.Fprintf(&buf, "We received your payment of %.2f %s.\n\n", data.Amount, data.Currency)
	fmt.Fprintf(&buf, "Transaction ID: %s\n", data.TransactionID)
	fmt.Fprintf(&buf, "Plan: %s\n", data.SubscriptionType)
	fmt.Fprintf(&buf, "Premium access until: %s\n\n", data.EndDate)
	buf.WriteString("Thank you for supporting the community.\n")
	return buf.String()
}

// BuildPaymentFailedEmail creates the notice sent when the gateway
// reports a failed payment.
func BuildPaymentFailedEmail(data PaymentEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your %s payment did not go through", data.SiteName),
		TextBody: buildPaymentFailedText(data),
		HTMLBody: render("payment_failed", paymentFailedHTMLTemplate, data),
	}
}

func buildPaymentFailedText(data PaymentEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FullName)
	fmt.Fprintf(&buf, "Your payment for transaction %s could not be completed.\n\n", data.TransactionID)
	buf.WriteString("No money was taken. You can retry the subscription at any time.\n")
	return buf.String()
}

// ResetEmailData holds data for the password reset email.
type ResetEmailData struct {
	SiteName  string
	FullName  string
	ResetLink string
}

// BuildPasswordResetEmail creates the email carrying a short-lived
// password reset link.
func BuildPasswordResetEmail(data ResetEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Reset your %s password", data.SiteName),
		TextBody: buildPasswordResetText(data),
		HTMLBody: render("password_reset", passwordResetHTMLTemplate, data),
	}
}

func buildPasswordResetText(data ResetEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FullName)
	fmt.Fprintf(&buf, "We received a request to reset your %s password.\n\n", data.SiteName)
	fmt.Fprintf(&buf, "Reset link: %s\n\n", data.ResetLink)
	buf.WriteString("The link expires shortly. If you did not ask for this, ignore this email.\n")
	return buf.String()
}

func render(name, tmpl string, data any) string {
	t := template.Must(template.New(name).Parse(tmpl))
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

const welcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hi {{.FullName}},</p>
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">
                Your account <strong>@{{.Username}}</strong> is ready. Start sharing tips,
                follow authors you like, and join the discussion.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const paymentConfirmedHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Payment Confirmed</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hi {{.FullName}},</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">
                We received your payment of <strong>{{printf "%.2f" .Amount}} {{.Currency}}</strong>.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6; border-radius: 8px;">
                <tr><td style="padding: 16px 24px; font-size: 14px; color: #374151;">
                  Transaction ID: <strong>{{.TransactionID}}</strong><br>
                  Plan: <strong>{{.SubscriptionType}}</strong><br>
                  Premium access until: <strong>{{.EndDate}}</strong>
                </td></tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const passwordResetHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Password Reset</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hi {{.FullName}},</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">
                We received a request to reset your password. The link below expires shortly.
                If you did not ask for this, ignore this email.
              </p>
              <table role="presentation" cellspacing="0" cellpadding="0" align="center">
                <tr><td style="border-radius: 6px; background-color: #4f46e5;">
                  <a href="{{.ResetLink}}" style="display: inline-block; padding: 12px 32px; font-size: 16px; font-weight: 600; color: #ffffff; text-decoration: none;">Reset Password</a>
                </td></tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const paymentFailedHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Payment Failed</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hi {{.FullName}},</p>
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">
                Your payment for transaction <strong>{{.TransactionID}}</strong> could not be completed.
                No money was taken. You can retry the subscription at any time.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and CORS. AppConfig is everything specific
// to Tech Tips Hub: database, JWT secrets, SMTP, the payment gateway,
// and upload storage.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT configuration. Access and refresh tokens are signed with
	// separate secrets so one cannot stand in for the other.
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	// CookieHashKey signs the refresh token cookie.
	CookieHashKey string

	// Site identity and link bases
	SiteName   string // Display name used in emails (e.g., Tech Tips Hub)
	BaseURL    string // Frontend base URL for password reset links
	APIBaseURL string // This API's public base URL, used for gateway callbacks

	// File storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// Email/SMTP configuration. Leave the host blank to disable
	// outbound mail (a no-op sender is used instead).
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Aamarpay gateway credentials
	AamarpayBaseURL      string
	AamarpayStoreID      string
	AamarpaySignatureKey string

	// Admin bootstrap: promotes/creates this account on startup.
	AdminEmail    string
	AdminPassword string
}

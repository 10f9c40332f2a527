// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Tech Tips Hub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_access_secret, etc.
//   - Environment variables: TECHTIPSHUB_MONGO_URI, TECHTIPSHUB_JWT_ACCESS_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_access_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tech_tips_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// JWT configuration
	{Name: "jwt_access_secret", Default: "dev-only-access-secret-change-me", Desc: "HS256 secret for access tokens"},
	{Name: "jwt_refresh_secret", Default: "dev-only-refresh-secret-change-me", Desc: "HS256 secret for refresh tokens"},
	{Name: "jwt_access_ttl", Default: "1h", Desc: "Access token lifetime (e.g., 15m, 1h)"},
	{Name: "jwt_refresh_ttl", Default: "720h", Desc: "Refresh token lifetime (e.g., 720h for 30 days)"},
	{Name: "cookie_hash_key", Default: "dev-only-change-me-0123456789ABCDEF", Desc: "Signing key for the refresh token cookie"},

	// Site identity and link bases
	{Name: "site_name", Default: "Tech Tips Hub", Desc: "Display name used in outbound email"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Frontend base URL for password reset links"},
	{Name: "api_base_url", Default: "http://localhost:8080", Desc: "Public base URL of this API, used for payment gateway callbacks"},

	// File storage configuration
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables outbound mail)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@techtipshub.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Tech Tips Hub", Desc: "From display name"},

	// Aamarpay gateway
	{Name: "aamarpay_base_url", Default: "https://sandbox.aamarpay.com", Desc: "Aamarpay API base URL"},
	{Name: "aamarpay_store_id", Default: "aamarpaytest", Desc: "Aamarpay store id"},
	{Name: "aamarpay_signature_key", Default: "", Desc: "Aamarpay signature key"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promotes/creates on startup)"},
	{Name: "admin_password", Default: "", Desc: "Initial password when the admin user is created"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TECHTIPSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTAccessSecret:  appValues.String("jwt_access_secret"),
		JWTRefreshSecret: appValues.String("jwt_refresh_secret"),
		JWTAccessTTL:     appValues.Duration("jwt_access_ttl", time.Hour),
		JWTRefreshTTL:    appValues.Duration("jwt_refresh_ttl", 30*24*time.Hour),
		CookieHashKey:    appValues.String("cookie_hash_key"),

		SiteName:   appValues.String("site_name"),
		BaseURL:    appValues.String("base_url"),
		APIBaseURL: appValues.String("api_base_url"),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		AamarpayBaseURL:      appValues.String("aamarpay_base_url"),
		AamarpayStoreID:      appValues.String("aamarpay_store_id"),
		AamarpaySignatureKey: appValues.String("aamarpay_signature_key"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTAccessSecret == "dev-only-access-secret-change-me" ||
			appCfg.JWTRefreshSecret == "dev-only-refresh-secret-change-me" {
			return fmt.Errorf("jwt secrets must be set in production")
		}
		if appCfg.AamarpaySignatureKey == "" {
			return fmt.Errorf("aamarpay_signature_key must be set in production")
		}
	}

	// Admin bootstrap needs both halves to create an account.
	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		logger.Warn("admin_email set without admin_password; an existing account can be promoted but none will be created")
	}

	return nil
}

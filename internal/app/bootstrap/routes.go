// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/auth"
	categoriesfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/categories"
	commentsfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/comments"
	healthfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/health"
	paymentsfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/payments"
	postsfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/posts"
	subscriptionsfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/subscriptions"
	usersfeature "github.com/noyonalways/tech-tips-hub-api/internal/app/features/users"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/auth"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/mailer"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the shared pieces (token
// manager, refresh cookie codec, mail sender, payment gateway, upload
// storage) and mounts every feature router under /api/v1.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewTokenManager(
		appCfg.JWTAccessSecret, appCfg.JWTRefreshSecret,
		appCfg.JWTAccessTTL, appCfg.JWTRefreshTTL,
	)

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	cookies := auth.NewCookieCodec(appCfg.CookieHashKey, secure, appCfg.JWTRefreshTTL)

	mail := buildMailer(appCfg, logger)

	gateway := paygate.New(paygate.Config{
		BaseURL:      appCfg.AamarpayBaseURL,
		StoreID:      appCfg.AamarpayStoreID,
		SignatureKey: appCfg.AamarpaySignatureKey,
		SuccessURL:   appCfg.APIBaseURL + "/api/v1/payments/confirmation",
		FailURL:      appCfg.APIBaseURL + "/api/v1/payments/failed",
		CancelURL:    appCfg.APIBaseURL + "/api/v1/payments/canceled",
	}, logger)

	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("upload storage init failed", zap.Error(err))
		return nil, err
	}

	resetBaseURL := appCfg.BaseURL + "/reset-password"

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Uploaded files (post covers, profile pictures, comment images)
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	r.Route("/api/v1", func(api chi.Router) {
		authHandler := authfeature.NewHandler(db, tokens, cookies, mail, appCfg.SiteName, resetBaseURL, logger)
		api.Mount("/auth", authfeature.Routes(authHandler))

		categoriesHandler := categoriesfeature.NewHandler(db, tokens, logger)
		api.Mount("/categories", categoriesfeature.Routes(categoriesHandler))

		commentsHandler := commentsfeature.NewHandler(db, tokens, files, logger)
		postsHandler := postsfeature.NewHandler(db, tokens, files, logger)
		api.Mount("/posts", postsfeature.Routes(postsHandler, commentsHandler))
		api.Mount("/comments", commentsfeature.Routes(commentsHandler))

		usersHandler := usersfeature.NewHandler(db, tokens, files, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		subscriptionsHandler := subscriptionsfeature.NewHandler(db, tokens, gateway, logger)
		api.Mount("/subscriptions", subscriptionsfeature.Routes(subscriptionsHandler))

		paymentsHandler := paymentsfeature.NewHandler(db, tokens, gateway, mail, appCfg.SiteName, logger)
		api.Mount("/payments", paymentsfeature.Routes(paymentsHandler))
	})

	return r, nil
}

// buildMailer returns the SMTP sender when a host is configured, the
// no-op sender otherwise.
func buildMailer(appCfg AppConfig, logger *zap.Logger) mailer.Sender {
	if appCfg.MailSMTPHost == "" {
		logger.Info("no SMTP host configured, outbound mail disabled")
		return mailer.Noop{}
	}
	from := appCfg.MailFrom
	if appCfg.MailFromName != "" {
		from = fmt.Sprintf("%s <%s>", appCfg.MailFromName, appCfg.MailFrom)
	}
	return mailer.NewSMTP(mailer.SMTPConfig{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     from,
	}, logger)
}

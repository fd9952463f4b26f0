// Package api собирает HTTP API: маршруты, middleware и зависимости.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Anubhav-Ghosh1/QR-Moments/docs"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/config"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/health"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/photo/forqrcode"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/photo/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/qrcode/details"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/qrcode/generate"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/qrcode/mine"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/qrcode/validate"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/changepassword"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/current"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/login"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/logout"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/register"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/search"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/updatedetails"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/handlers/user/updateimage"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/http/middlewarectx"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/metrics"
	photoservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/photo"
	qrservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/qrcode"
	userservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/user"
)

// AuthClient клиент gRPC-сервиса авторизации.
type AuthClient interface {
	register.Service
	login.Service
	middlewarectx.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	QRCodes *qrservice.Service
	Photos  *photoservice.Service
	Users   *userservice.Service
	Auth    AuthClient
	Metrics *metrics.Metrics
	Health  health.Checker
	Uploads config.Uploads
	HTTP    config.HTTPServer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(middleware.RequestID)
	if d.HTTP.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(d.HTTP.CORSOrigins),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	limiter := middlewarectx.NewRateLimiter(d.HTTP.RateLimit, d.HTTP.RateWindow)
	jwt := middlewarectx.JWTMiddleware(d.Auth, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middlewarectx.RateLimitMiddleware(limiter, logger),
			middlewarectx.BodyLimit(d.HTTP.BodyLimit),
		)

		r.Get("/health", health.New(logger, d.Health).ServeHTTP)

		r.Route("/users", func(r chi.Router) {
			r.Post("/registerUser", register.New(logger, d.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, d.Auth).ServeHTTP)
			r.Get("/getUserByName/{username}", search.New(logger, d.Users).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(jwt)
				r.Post("/logout", logout.New(logger, d.Users).ServeHTTP)
				r.Get("/getUser", current.New(logger, d.Users).ServeHTTP)
				r.Patch("/updateAccountDetails", updatedetails.New(logger, d.Users).ServeHTTP)
				r.Patch("/changePassword", changepassword.New(logger, d.Users).ServeHTTP)
				r.Patch("/updateUserAvatar", updateimage.New(logger, "avatar", d.Users.UpdateAvatar, d.Uploads.MaxUploadSize).ServeHTTP)
				r.Patch("/updateCoverImage", updateimage.New(logger, "coverImage", d.Users.UpdateCoverImage, d.Uploads.MaxUploadSize).ServeHTTP)
			})
		})

		r.Route("/qr", func(r chi.Router) {
			r.Get("/details", details.New(logger, d.QRCodes).ServeHTTP)
			r.Get("/validate/{qrId}", validate.New(logger, d.QRCodes).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(jwt)
				r.Post("/generate", generate.New(logger, d.QRCodes).ServeHTTP)
				r.Get("/mine", mine.New(logger, d.QRCodes).ServeHTTP)
			})
		})

		r.Route("/photo", func(r chi.Router) {
			r.Post("/upload", upload.New(logger, d.Photos, d.Uploads.MaxUploadSize).ServeHTTP)
			r.Post("/forQRCode", forqrcode.New(logger, d.Photos).ServeHTTP)
		})
	})

	// Загруженные файлы
	r.Handle("/static/*", middlewarectx.NoSniff(
		http.StripPrefix("/static/", http.FileServer(http.Dir(d.Uploads.UploadDir))),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

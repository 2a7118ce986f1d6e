package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/internal/handler/preview"
	"github.com/resubscribe/resubscribe-go/internal/handler/session"
	middlewarePkg "github.com/resubscribe/resubscribe-go/internal/middleware"
	"github.com/resubscribe/resubscribe-go/pkg/resubscribe"
)

// NewRouter wires the preview host routes to the SDK client.
func NewRouter(client *resubscribe.Client, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sessionHandler := session.New(client, logger)
	wsHandler := preview.NewWebSocketHandler(client, logger)

	preview.RegisterPage(r)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyspot-backend/internal/handlers"
	"studyspot-backend/internal/middleware"
	"studyspot-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	checkInHandler *handlers.CheckInHandler,
	statsHandler *handlers.StatsHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	spotHandler *handlers.SpotHandler,
	catalogHandler *handlers.CatalogHandler,
	userHandler *handlers.UserHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Spot Routes ────
		r.Route("/spots", func(r chi.Router) {
			r.Get("/", spotHandler.List)    // Public
			r.Get("/{id}", spotHandler.Get) // Public

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/{id}/checkins", checkInHandler.ListBySpot)
			})
		})

		// ──── Check-In Routes ────
		r.Route("/checkins", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", checkInHandler.Create)
			r.Get("/active", checkInHandler.Active)
			r.Post("/{id}/checkout", checkInHandler.CheckOut)
		})

		// ──── Stats Routes ────
		r.Route("/stats", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", statsHandler.Me)
			r.Get("/me/badges", statsHandler.Badges)
			r.Get("/me/tier", statsHandler.Tier)
			r.Get("/me/sessions", statsHandler.Sessions)
		})

		// ──── Profile Routes ────
		r.Route("/users", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Patch("/me", userHandler.UpdateMe)
		})

		// ──── Leaderboard ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/leaderboard", leaderboardHandler.Get)
		})

		// ──── Catalogs (public, static) ────
		r.Get("/tiers", catalogHandler.Tiers)
		r.Get("/quests", catalogHandler.Quests)

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/listkeeper/internal/api"
	"github.com/dukerupert/listkeeper/internal/handler"
	"github.com/dukerupert/listkeeper/internal/media"
	"github.com/dukerupert/listkeeper/internal/middleware"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/session"
	"github.com/dukerupert/listkeeper/internal/shopping"
	"github.com/dukerupert/listkeeper/internal/store"
	ws "github.com/dukerupert/listkeeper/internal/websocket"
)

// Config is what the router needs beyond its collaborators.
type Config struct {
	Locale         string
	LoginRateLimit int
	OriginPatterns []string
}

type Server struct {
	hub         *ws.Hub
	sessions    *session.Manager
	listH       *handler.ListHandler
	itemH       *handler.ItemHandler
	catalogH    *handler.CatalogHandler
	authH       *handler.AuthHandler
	prefsH      *handler.PreferencesHandler
	homeH       *handler.HomeHandler
	mediaH      *handler.MediaHandler
	rateLimiter *middleware.RateLimiter
	cfg         Config
	logger      *slog.Logger
}

// New wires the gateway. images stores uploads; nil sends them through the
// backend.
func New(cfg Config, backend *api.Client, sessions *session.Manager, state *store.StateStore, images media.Uploader, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	notices := notice.New(cfg.Locale)
	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}

	lists := shopping.NewService(backend, logger.With("component", "shopping"))
	if images == nil {
		images = backend
	}

	// Every screen refetches its session after a login or logout, including
	// the logout forced by a backend 401.
	sessions.OnChange(func(s model.Session) {
		action := ws.ActionLogout
		id := ""
		if s.Authenticated() {
			action = ws.ActionLogin
			id = s.User.ID
		}
		hub.Broadcast(ws.NewMessage(ws.EntitySession, action, id))
	})

	return &Server{
		hub:         hub,
		sessions:    sessions,
		listH:       handler.NewListHandler(lists, hub, notices, logger.With("component", "lists")),
		itemH:       handler.NewItemHandler(lists, backend, hub, notices, logger.With("component", "items")),
		catalogH:    handler.NewCatalogHandler(backend, hub, notices, logger.With("component", "catalog")),
		authH:       handler.NewAuthHandler(sessions, backend, hub, notices, logger.With("component", "auth")),
		prefsH:      handler.NewPreferencesHandler(state, hub, notices, logger.With("component", "preferences")),
		homeH:       handler.NewHomeHandler(lists, backend, notices, logger.With("component", "home")),
		mediaH:      handler.NewMediaHandler(media.NewStore(images), notices, logger.With("component", "media")),
		rateLimiter: middleware.NewRateLimiter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no session required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /api/session", s.authH.Session)
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/onboarding/complete", s.authH.CompleteOnboarding)
	outerMux.HandleFunc("GET /api/preferences", s.prefsH.Get)
	outerMux.HandleFunc("PUT /api/preferences", s.prefsH.Update)

	// Protected routes, wrapped with RequireSession
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	requireSession := middleware.RequireSession(s.sessions, s.sessions.Route)
	outerMux.Handle("/", requireSession(protectedMux))

	// Request id first so the logger sees it
	logged := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return middleware.RequestID(logged)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"signed_in": s.sessions.Current().Authenticated(),
		"clients":   s.hub.ClientCount(),
	})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, s.cfg.LoginRateLimit, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session routes
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/profile", s.authH.Profile)
	mux.HandleFunc("PATCH /api/profile", s.authH.UpdateProfile)

	mux.HandleFunc("GET /api/home", s.homeH.Show)

	// Shopping list routes
	mux.HandleFunc("GET /api/lists", s.listH.Index)
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Show)
	mux.HandleFunc("PATCH /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("POST /api/lists/{id}/toggle-status", s.listH.ToggleStatus)

	// Item routes
	mux.HandleFunc("POST /api/lists/{id}/items", s.itemH.Create)
	mux.HandleFunc("POST /api/lists/{id}/products/{productId}", s.itemH.CreateFromProduct)
	mux.HandleFunc("PATCH /api/lists/{id}/items/{itemId}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}/items/{itemId}", s.itemH.Delete)
	mux.HandleFunc("POST /api/lists/{id}/items/{itemId}/toggle", s.itemH.Toggle)

	// Catalog routes; deletes are admin only
	mux.HandleFunc("GET /api/categories", s.catalogH.ListCategories)
	mux.HandleFunc("POST /api/categories", s.catalogH.CreateCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.catalogH.UpdateCategory)
	mux.Handle("DELETE /api/categories/{id}", middleware.RequireAdmin(http.HandlerFunc(s.catalogH.DeleteCategory)))
	mux.HandleFunc("GET /api/products", s.catalogH.ListProducts)
	mux.HandleFunc("POST /api/products", s.catalogH.CreateProduct)
	mux.HandleFunc("GET /api/products/{id}", s.catalogH.ShowProduct)
	mux.HandleFunc("PATCH /api/products/{id}", s.catalogH.UpdateProduct)
	mux.Handle("DELETE /api/products/{id}", middleware.RequireAdmin(http.HandlerFunc(s.catalogH.DeleteProduct)))
	mux.HandleFunc("GET /api/suggest", s.catalogH.Suggest)

	// Image uploads for category, product and profile forms
	mux.HandleFunc("POST /api/media", s.mediaH.Upload)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket"), s.cfg.OriginPatterns))
}

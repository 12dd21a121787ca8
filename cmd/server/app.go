package main

import (
	"context"
	"net/http"

	blogs "github.com/diewo77/go-blogs"
	"github.com/diewo77/go-blogs/auth"
	"github.com/diewo77/go-blogs/internal/config"
	"github.com/diewo77/go-blogs/internal/handlers"
	"github.com/diewo77/go-blogs/internal/middleware"
	"github.com/diewo77/go-blogs/internal/policy"
	"github.com/diewo77/go-blogs/internal/services"
	"github.com/diewo77/go-blogs/internal/storage"
	"github.com/diewo77/go-blogs/internal/store"
	"github.com/diewo77/go-blogs/view"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	handler  http.Handler
	store    *store.Store
	sessions *auth.Sessions
	auth     *handlers.AuthHandler
	news     *handlers.NewsHandler
	files    *handlers.FileHandler
}

// NewApp wires the store, file storage, gate and handlers behind the middleware chain.
func NewApp(cfg *config.Config, db *gorm.DB, files storage.Storage) *App {
	st := store.New(db)
	sessions := auth.NewSessions(auth.Options{
		Secret:      cfg.Session.Secret,
		TTL:         cfg.Session.TTL,
		RememberTTL: cfg.Session.RememberTTL,
		Secure:      cfg.Session.Secure,
		Verifier: func(ctx context.Context, uid uint) bool {
			ok, err := st.UserExists(ctx, uid)
			return err == nil && ok
		},
	})
	svc := services.NewNewsService(st, files, policy.NewGate())

	view.SetFS(blogs.Templates())
	view.SetDev(cfg.App.Dev)
	view.SetCSRFResolver(func(r *http.Request) string { return middleware.CSRFToken(r.Context()) })

	app := &App{
		mux:      http.NewServeMux(),
		store:    st,
		sessions: sessions,
		auth:     handlers.NewAuthHandler(st, sessions),
		news:     handlers.NewNewsHandler(svc),
		files:    handlers.NewFileHandler(svc),
	}
	app.setupRoutes()
	app.handler = middleware.Chain(app.mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.Preferences,
		sessions.Middleware,
		middleware.CSRF(cfg.Session.Secure),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /{$}", a.news.Index)
	a.mux.HandleFunc("GET /register", a.auth.Register)
	a.mux.HandleFunc("POST /register", a.auth.Register)
	a.mux.HandleFunc("GET /login", a.auth.Login)
	a.mux.HandleFunc("POST /login", a.auth.Login)
	a.mux.Handle("GET /healthz", handlers.Health(a.store))
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(blogs.Static())))

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes
	// ─────────────────────────────────────────────────────────────────────────
	a.protect("GET /logout", a.auth.Logout)
	a.protect("GET /ready", a.news.Ready)
	a.protect("GET /news", a.news.Create)
	a.protect("POST /news", a.news.Create)
	a.protect("GET /uploads/{filename}", a.files.Upload)

	// Owner-checked routes; foreign or missing items answer 404.
	a.protect("GET /news/{id}", a.news.Edit)
	a.protect("POST /news/{id}", a.news.Edit)
	a.protect("GET /news_delete/{id}", a.news.Delete)
	a.protect("POST /news_delete/{id}", a.news.Delete)
	a.protect("GET /news_ready/{id}", a.news.MarkReady)
	a.protect("GET /news_not_ready/{id}", a.news.MarkNotReady)
	a.protect("GET /file/{id}", a.files.Attachment)
}

func (a *App) protect(pattern string, h http.HandlerFunc) {
	a.mux.Handle(pattern, auth.RequireAuth(h))
}

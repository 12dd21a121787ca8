package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-blogs/auth"
	"github.com/diewo77/go-blogs/httpx"
	"github.com/diewo77/go-blogs/internal/forms"
	"github.com/diewo77/go-blogs/internal/models"
	"github.com/diewo77/go-blogs/internal/store"
)

type AuthHandler struct {
	store    *store.Store
	sessions *auth.Sessions
}

func NewAuthHandler(st *store.Store, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{store: st, sessions: sessions}
}

// Register serves GET and POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "register.html", map[string]any{"Form": &forms.RegisterForm{}})
		return
	}

	form, err := forms.DecodeRegisterForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	page := func(extra map[string]any) {
		data := map[string]any{"Form": form}
		for k, v := range extra {
			data[k] = v
		}
		render(w, r, "register.html", data)
	}

	if v := form.Validate(); !v.Empty() {
		page(map[string]any{"Errors": v})
		return
	}
	if !form.PasswordsMatch() {
		page(map[string]any{"Message": "passwords_mismatch"})
		return
	}
	taken, err := h.store.EmailTaken(r.Context(), form.Email)
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	if taken {
		page(map[string]any{"Message": "user_exists"})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	user := &models.User{Name: form.Name, Email: form.Email, About: form.About, HashedPassword: hash}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		// lost a race against a concurrent registration of the same address
		if taken, _ := h.store.EmailTaken(r.Context(), form.Email); taken {
			page(map[string]any{"Message": "user_exists"})
			return
		}
		httpx.ServerError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "user registered", "user_id", user.ID)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login serves GET and POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "login.html", map[string]any{"Form": &forms.LoginForm{}})
		return
	}

	form, err := forms.DecodeLoginForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if v := form.Validate(); !v.Empty() {
		render(w, r, "login.html", map[string]any{"Form": form, "Errors": v})
		return
	}

	user, err := h.store.UserByEmail(r.Context(), form.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		httpx.ServerError(w, r, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, form.Password) {
		render(w, r, "login.html", map[string]any{"Form": form, "Message": "invalid_credentials"})
		return
	}

	if err := h.sessions.CreateSession(w, user.ID, form.RememberMe); err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

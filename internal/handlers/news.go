package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/diewo77/go-blogs/auth"
	"github.com/diewo77/go-blogs/httpx"
	"github.com/diewo77/go-blogs/internal/forms"
	"github.com/diewo77/go-blogs/internal/services"
	"github.com/diewo77/go-blogs/internal/store"
	"github.com/diewo77/go-blogs/validation"
)

type NewsHandler struct {
	svc *services.NewsService
}

func NewNewsHandler(svc *services.NewsService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// Index lists the user's pending items, or the shared items for anonymous visitors.
func (h *NewsHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false, "index.html")
}

// Ready lists the user's done items.
func (h *NewsHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true, "ready.html")
}

func (h *NewsHandler) list(w http.ResponseWriter, r *http.Request, ready bool, page string) {
	userID, _ := auth.UserIDFromContext(r.Context())
	category := r.URL.Query().Get("category")
	if category == "" {
		category = store.CategoryAll
	}

	items, err := h.svc.List(r.Context(), userID, ready, category)
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	render(w, r, page, map[string]any{
		"News":       items,
		"Categories": categories,
		"Category":   category,
	})
}

// Create serves GET and POST /news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if r.Method == http.MethodGet {
		h.form(w, r, &forms.NewsForm{}, nil, false)
		return
	}

	in, ok := h.decode(w, r, false)
	if !ok {
		return
	}
	defer in.close()
	if _, err := h.svc.Create(r.Context(), userID, in.NewsInput); err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Edit serves GET and POST /news/{id}.
func (h *NewsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		n, err := h.svc.Get(r.Context(), userID, id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.form(w, r, forms.NewsFormFrom(n), nil, true)
		return
	}

	// the row is checked before the body is read so strangers never reach validation
	if _, err := h.svc.Get(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	in, ok := h.decode(w, r, true)
	if !ok {
		return
	}
	defer in.close()
	if _, err := h.svc.Update(r.Context(), userID, id, in.NewsInput); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete serves GET and POST /news_delete/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *NewsHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	h.setReady(w, r, true, "/ready")
}

func (h *NewsHandler) MarkNotReady(w http.ResponseWriter, r *http.Request) {
	h.setReady(w, r, false, "/")
}

func (h *NewsHandler) setReady(w http.ResponseWriter, r *http.Request, ready bool, next string) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.SetReady(r.Context(), userID, id, ready); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// upload pairs the service input with the open multipart file.
type upload struct {
	services.NewsInput
	file multipart.File
}

func (u *upload) close() {
	if u.file != nil {
		u.file.Close()
	}
}

// decode reads and validates the news form. On failure the response is already written.
func (h *NewsHandler) decode(w http.ResponseWriter, r *http.Request, editing bool) (*upload, bool) {
	form, err := forms.DecodeNewsForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return nil, false
	}
	if v := form.Validate(); !v.Empty() {
		h.form(w, r, form, v, editing)
		return nil, false
	}

	in := &upload{NewsInput: services.NewsInput{
		Title:        form.Title,
		Content:      form.Content,
		IsPrivate:    form.IsPrivate,
		CategoryName: form.CategoryName,
		DueDate:      form.DueDate,
	}}
	if form.File != nil {
		f, err := form.File.Open()
		if err != nil {
			httpx.ServerError(w, r, err)
			return nil, false
		}
		in.file = f
		in.NewsInput.File = &services.Upload{Filename: form.File.Filename, Body: f}
	}
	return in, true
}

func (h *NewsHandler) form(w http.ResponseWriter, r *http.Request, form *forms.NewsForm, errs validation.Violations, editing bool) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		httpx.ServerError(w, r, err)
		return
	}
	data := map[string]any{
		"Form":       form,
		"Categories": categories,
		"Editing":    editing,
	}
	if errs != nil {
		data["Errors"] = errs
	}
	render(w, r, "news.html", data)
}

// fail maps service errors: missing or foreign rows are 404, anything else 500.
func (h *NewsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	httpx.ServerError(w, r, err)
}

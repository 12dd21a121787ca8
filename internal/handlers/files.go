package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/diewo77/go-blogs/auth"
	"github.com/diewo77/go-blogs/httpx"
	"github.com/diewo77/go-blogs/internal/services"
	"github.com/diewo77/go-blogs/internal/storage"
)

type FileHandler struct {
	svc *services.NewsService
}

func NewFileHandler(svc *services.NewsService) *FileHandler {
	return &FileHandler{svc: svc}
}

// Attachment serves GET /file/{id}: the file attached to an owned item.
func (h *FileHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	rc, name, err := h.svc.OpenAttachment(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer rc.Close()
	stream(w, r, rc, name)
}

// Upload serves GET /uploads/{filename} to any signed-in user.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	name := r.PathValue("filename")
	rc, err := h.svc.OpenUpload(r.Context(), userID, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer rc.Close()
	stream(w, r, rc, name)
}

func (h *FileHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	httpx.ServerError(w, r, err)
}

func stream(w http.ResponseWriter, r *http.Request, body io.Reader, name string) {
	w.Header().Set("Content-Type", storage.MimeType(name))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, body); err != nil {
		slog.WarnContext(r.Context(), "stream file", "file", name, "error", err)
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/go-blogs/httpx"
	"github.com/diewo77/go-blogs/view"
)

// render writes page or answers 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if err := view.Render(w, r, page, data); err != nil {
		httpx.ServerError(w, r, err)
	}
}

// pathID parses the {id} wildcard; ok is false for anything but a positive integer.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

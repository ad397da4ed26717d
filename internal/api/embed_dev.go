//go:build dev

package api

import (
	"net/http"
)

// StaticHandler serves the frontend straight from disk so edits to
// dist/index.html show up without a rebuild.
func (h *Handler) StaticHandler() http.Handler {
	return http.FileServer(http.Dir("internal/api/dist"))
}

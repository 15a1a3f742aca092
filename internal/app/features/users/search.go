// internal/app/features/users/search.go
package users

import (
	"context"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ServeSearch runs a case-insensitive substring search over name, email,
// and organizationName. The query string is treated as a literal, not a
// pattern.
//
// Route: GET /api/user/search/?q=
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.Users.Search(ctx, q)
	if err != nil {
		h.errlog.ServerError(w, r, "search users", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]models.User{"users": found})
}

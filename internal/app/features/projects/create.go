// internal/app/features/projects/create.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/policy/projectpolicy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// HandleCreate creates a project. Company only; the creator becomes the
// head and the first companyPeople entry.
//
// Route: POST /api/project/create/new
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := projectpolicy.CanCreate(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Deadline    string `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Fault(w, faults.Required("name"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registry.CheckProjectName(ctx, name); err != nil {
		h.errlog.Fault(w, r, "create project: name check", err)
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "create project: lookup user", err)
		return
	}

	_, err = h.Projects.Create(ctx, models.Project{
		Name:            name,
		Description:     req.Description,
		URL:             req.URL,
		Deadline:        req.Deadline,
		ProjectHead:     user.ID,
		ProjectHeadName: user.Name,
		CompanyPeople: []models.Participant{
			{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role, ProjectRole: "", AddedOn: time.Now().UTC()},
		},
	})
	if err != nil {
		h.errlog.ServerError(w, r, "create project", err)
		return
	}
	respond.Msg(w, "Project Created")
}

// ServeCheckName reports whether a project name is still free.
//
// Route: GET /api/project/check/project/{projectname}
func (h *Handler) ServeCheckName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "projectname")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Registry.CheckProjectName(ctx, name); err != nil {
		h.errlog.Fault(w, r, "check project name", err)
		return
	}
	respond.Msg(w, "Project Doesn't exists")
}

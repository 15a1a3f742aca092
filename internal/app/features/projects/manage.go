// internal/app/features/projects/manage.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/issuedeck/issuedeck/internal/app/policy/projectpolicy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleUpdate updates project details. Company only.
//
// Route: PUT /api/project/update/{projectid}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := projectpolicy.CanUpdate(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
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
	if strings.TrimSpace(req.Name) == "" {
		respond.Fault(w, faults.Required("name"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Projects.UpdateDetails(ctx, projectID, strings.TrimSpace(req.Name), req.Description, req.URL, req.Deadline); err != nil {
		h.errlog.Fault(w, r, "update project", err)
		return
	}
	respond.Msg(w, "Project Updated")
}

// HandleDelete deletes a project and every issue filed under it. Head
// only; this is the single cascading delete in the system.
//
// Route: DELETE /api/project/delete/{projectid}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		h.errlog.Fault(w, r, "delete project: lookup", err)
		return
	}
	id, _ := auth.CurrentIdentity(r)
	if d := projectpolicy.CanDelete(id, project); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

	// Issues first: a project without its issues is recoverable, orphaned
	// issues are not.
	n, err := h.Issues.DeleteByProject(ctx, projectID)
	if err != nil {
		h.errlog.ServerError(w, r, "delete project: cascade issues", err)
		return
	}
	if err := h.Projects.Delete(ctx, projectID); err != nil {
		h.errlog.Fault(w, r, "delete project", err)
		return
	}
	h.Log.Info("project deleted",
		zap.String("project_id", projectID.Hex()),
		zap.Int64("issues_removed", n))
	respond.Msg(w, "Project Deleted")
}

// HandleChangeHead points the project at a new head, resolved by email.
//
// Route: PUT /api/project/update/{projectid}/change-project-head/{emailid}
func (h *Handler) HandleChangeHead(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := projectpolicy.CanTransferHead(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.errlog.Fault(w, r, "change project head: lookup user", err)
		return
	}
	if err := h.Projects.SetHead(ctx, projectID, user.ID, user.Name); err != nil {
		h.errlog.Fault(w, r, "change project head", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"msg":     "Changed Project Head",
		"newHead": map[string]string{"id": user.ID.Hex(), "name": user.Name},
	})
}

// HandleAssignRole sets the free-text project role for a companyPeople
// entry. Clients never carry a project role, matching the list the update
// targets.
//
// Route: PUT /api/project/add/role/{projectid}/{emailid}
func (h *Handler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := projectpolicy.CanAssignRole(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	var req struct {
		ProjectRole string `json:"projectRole"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Projects.SetCompanyProjectRole(ctx, projectID, email, req.ProjectRole); err != nil {
		h.errlog.Fault(w, r, "assign project role", err)
		return
	}
	respond.Msg(w, "Project role updated!")
}

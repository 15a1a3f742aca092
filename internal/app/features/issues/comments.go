// internal/app/features/issues/comments.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/lifecycle"
	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleAddComment appends a comment to an issue. The commenter must be a
// participant of the owning project; their project role is resolved and
// frozen into the comment at post time.
//
// Route: POST /api/issue/{projectid}/{issueid}/add/comment
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	issueID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "issueid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("issueid", "bad issue id"))
		return
	}

	var req struct {
		CommentBody string `json:"commentBody"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		h.errlog.Fault(w, r, "add comment: lookup project", err)
		return
	}
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "add comment: lookup user", err)
		return
	}

	comment, err := lifecycle.NewComment(project, user, req.CommentBody, time.Now().UTC())
	if err != nil {
		h.errlog.Fault(w, r, "add comment: build", err)
		return
	}
	if err := h.Issues.PushComment(ctx, issueID, comment); err != nil {
		h.errlog.Fault(w, r, "add comment", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"msg":        "Comment added",
		"newComment": comment,
	})
}

// HandleDeleteComment removes a comment by id, preserving the order of
// the rest. Unknown comment ids are a no-op.
//
// Route: DELETE /api/issue/{issueid}/delete/comment/{commentid}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	issueID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "issueid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("issueid", "bad issue id"))
		return
	}
	commentID := chi.URLParam(r, "commentid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Issues.PullComment(ctx, issueID, commentID); err != nil {
		h.errlog.Fault(w, r, "delete comment", err)
		return
	}
	respond.Msg(w, "Comment deleted")
}

// internal/app/lifecycle/lifecycle.go

// Package lifecycle implements the issue state machine and comment
// provenance rules. Everything here is pure: functions take snapshots and
// a clock value, mutate or derive, and leave persistence to the stores.
package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/htmlsanitize"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ApplyStatus moves the issue to newStatus and maintains the closure
// coupling: ClosedOn is set exactly when the issue enters Done and cleared
// on any other transition.
//
// Entering Done does NOT touch UpdatedOn; every other transition stamps it.
// Callers that edit other fields alongside a Done transition get the same
// behavior: the close timestamp is the record of the change.
func ApplyStatus(issue *models.Issue, newStatus string, now time.Time) {
	issue.Status = newStatus
	if newStatus == models.StatusDone {
		closed := now
		issue.ClosedOn = &closed
		return
	}
	updated := now
	issue.UpdatedOn = &updated
	issue.ClosedOn = nil
}

// ResolveProjectRole returns the project role recorded for userID in the
// owning project, searching clients before companyPeople. A commenter who
// is in neither list yields ErrRoleResolution; callers surface it as a
// conflict rather than storing a comment with unknown provenance.
func ResolveProjectRole(project models.Project, userID primitive.ObjectID) (string, error) {
	p, ok := project.FindParticipant(userID)
	if !ok {
		return "", faults.ErrRoleResolution
	}
	return p.ProjectRole, nil
}

// NewComment builds a comment for user on an issue of project, resolving
// the commenter's project role at post time. The role is a snapshot: later
// role changes do not rewrite existing comments.
func NewComment(project models.Project, user models.User, body string, now time.Time) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Comment{}, faults.Required("commentBody")
	}
	role, err := ResolveProjectRole(project, user.ID)
	if err != nil {
		return models.Comment{}, err
	}
	return models.Comment{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Name:        user.Name,
		ProjectRole: role,
		CommentBody: htmlsanitize.Sanitize(body),
		PostedOn:    now,
	}, nil
}

// ValidateIssue checks the required free-text fields on create and update.
func ValidateIssue(issue models.Issue) error {
	if strings.TrimSpace(issue.ShortSummary) == "" {
		return faults.Required("shortSummary")
	}
	if strings.TrimSpace(issue.Description) == "" {
		return faults.Required("description")
	}
	if strings.TrimSpace(issue.Priority) == "" {
		return faults.Required("priority")
	}
	if issue.EstimateInHours < 0 {
		return faults.Invalid("estimateInHours", "must not be negative")
	}
	return nil
}

// DownloadRow is the flattened, share-safe projection of an open issue.
// Internal ids, the raw description, and the comment thread are omitted.
type DownloadRow struct {
	ShortSummary    string    `json:"shortSummary"`
	ReporterName    string    `json:"reporterName"`
	Priority        string    `json:"priority"`
	EstimateInHours float64   `json:"estimateInHours"`
	Status          string    `json:"status"`
	Assignees       []string  `json:"assignees"`
	CreatedOn       time.Time `json:"createdOn"`
}

// DownloadRows projects issues for export. Done issues are excluded; the
// export is a picture of remaining work.
func DownloadRows(issues []models.Issue) []DownloadRow {
	rows := make([]DownloadRow, 0, len(issues))
	for _, is := range issues {
		if is.Status == models.StatusDone {
			continue
		}
		names := make([]string, 0, len(is.Assignees))
		for _, a := range is.Assignees {
			names = append(names, a.Name)
		}
		rows = append(rows, DownloadRow{
			ShortSummary:    is.ShortSummary,
			ReporterName:    is.ReporterName,
			Priority:        is.Priority,
			EstimateInHours: is.EstimateInHours,
			Status:          is.Status,
			Assignees:       names,
			CreatedOn:       is.CreatedOn,
		})
	}
	return rows
}

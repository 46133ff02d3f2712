// Package moderation implements the content lifecycle state machine.
// Transitions mutate the post in memory only; persistence and authorization
// are the caller's concern. Each applied decision overwrites the previous
// moderation metadata: the last decision wins, no history is kept here.
package moderation

import (
	"strings"
	"time"

	"taskflowpro/internal/models"
)

// Decision is a moderation action an authorized moderator may take.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionFlag    Decision = "flag"
)

// Valid reports whether the decision is one of the known values.
func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionFlag:
		return true
	}
	return false
}

// target returns the state a decision moves a post into. Transitions are
// valid from any state.
func (d Decision) target() models.PostStatus {
	switch d {
	case DecisionApprove:
		return models.PostStatusPublished
	case DecisionReject:
		return models.PostStatusRejected
	case DecisionFlag:
		return models.PostStatusFlagged
	}
	return ""
}

// requiresNotes reports whether the decision must carry non-empty notes.
// Approvals may omit notes; rejections and flags must explain themselves.
func (d Decision) requiresNotes() bool {
	return d == DecisionReject || d == DecisionFlag
}

// Apply validates and applies a moderation decision to post. On validation
// failure the post is left completely unchanged. actorID is recorded as the
// moderator; now becomes the moderation timestamp.
func Apply(post *models.Post, actorID uint, decision Decision, notes string, now time.Time) error {
	if post == nil {
		return models.NewValidationError("No post to moderate")
	}
	if !decision.Valid() {
		return models.NewValidationError("Unknown moderation action")
	}

	notes = strings.TrimSpace(notes)
	if decision.requiresNotes() && notes == "" {
		return models.NewValidationError("Moderation notes are required for " + string(decision))
	}

	post.Status = decision.target()
	post.ModeratedBy = &actorID
	post.ModeratedAt = &now
	post.ModerationNotes = notes
	return nil
}

// NeedsModeration reports whether a post in the given state sits in the
// active review queue. Published content has been handled; rejected content
// is excluded from the queue but remains visible in the all-content view.
func NeedsModeration(status models.PostStatus) bool {
	return status != models.PostStatusPublished && status != models.PostStatusRejected
}

// QueueStatuses returns the states that make up the active review queue.
func QueueStatuses() []models.PostStatus {
	return []models.PostStatus{models.PostStatusDraft, models.PostStatusFlagged}
}

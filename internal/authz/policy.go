// Package authz implements the access decision rules for content items.
// Every predicate is pure: no I/O, no ambient state, total over all inputs.
// Missing data always means deny.
package authz

import "taskflowpro/internal/models"

// Action is an operation an actor may attempt on a content item.
type Action string

const (
	ActionViewAny     Action = "viewAny"
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "forceDelete"
	ActionModerate    Action = "moderate"
)

// CanPerform reports whether actor may perform action on target.
// target may be nil for actions that are not scoped to a single post
// (viewAny, create, moderate); target-scoped actions deny on nil target.
func CanPerform(actor *models.User, action Action, target *models.Post) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionViewAny, ActionCreate:
		return true

	case ActionView:
		if target == nil {
			return false
		}
		return actor.ID == target.UserID ||
			target.Status == models.PostStatusPublished ||
			actor.IsAdministrator()

	case ActionUpdate:
		if target == nil {
			return false
		}
		// Owners lose update rights once their post is rejected; only a
		// moderator decision can bring it back.
		if actor.ID == target.UserID && target.Status != models.PostStatusRejected {
			return true
		}
		return actor.IsAdministrator()

	case ActionDelete:
		if target == nil {
			return false
		}
		return actor.ID == target.UserID || actor.IsAdministrator()

	case ActionModerate:
		return actor.IsAdministrator()

	case ActionRestore, ActionForceDelete:
		return false
	}

	return false
}

// IsProtected reports whether a user account is immune to administrative
// mutation (delete, suspend, status toggle, role change).
func IsProtected(user *models.User) bool {
	return user != nil && user.IsSuperadmin()
}

package service

import (
	"errors"

	"hourline.app/server/internal/model"
)

// ErrForbidden is returned when the acting member lacks the role an operation needs.
var ErrForbidden = errors.New("forbidden")

// Actor is the authenticated member performing a workspace scoped operation.
type Actor struct {
	UserID    int64
	UserName  string
	UserEmail string
	Workspace model.Workspace
	Role      model.Role
}

func NewActor(user *model.User, m model.Membership) Actor {
	return Actor{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Workspace: m.Workspace,
		Role:      m.Role,
	}
}

func (a Actor) WorkspaceID() int64 {
	return a.Workspace.ID
}

// CanActOn reports whether the actor may modify data owned by userID.
func (a Actor) CanActOn(userID int64) bool {
	return a.UserID == userID || a.Role.IsAdmin()
}

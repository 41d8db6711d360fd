package model

import (
	"slices"
	"time"
)

type Workspace struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Role is a member's role inside a workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// IsAdmin reports whether the role may act on other members' data.
func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleAdmin
}

type Permission string

const (
	PermWorkspaceManage    Permission = "workspace:manage"
	PermMembersManage      Permission = "members:manage"
	PermProjectsManage     Permission = "projects:manage"
	PermClientsManage      Permission = "clients:manage"
	PermInvoicesManage     Permission = "invoices:manage"
	PermIntegrationsManage Permission = "integrations:manage"
	PermEntriesWrite       Permission = "entries:write"
)

var adminPermissions = []Permission{
	PermWorkspaceManage,
	PermMembersManage,
	PermProjectsManage,
	PermClientsManage,
	PermInvoicesManage,
	PermIntegrationsManage,
	PermEntriesWrite,
}

var memberPermissions = []Permission{
	PermEntriesWrite,
}

// PermissionsFor returns the permission set granted by a role. Unknown roles get none.
func PermissionsFor(r Role) []Permission {
	switch r {
	case RoleOwner, RoleAdmin:
		return slices.Clone(adminPermissions)
	case RoleMember:
		return slices.Clone(memberPermissions)
	}
	return nil
}

func HasPermission(r Role, p Permission) bool {
	return slices.Contains(PermissionsFor(r), p)
}

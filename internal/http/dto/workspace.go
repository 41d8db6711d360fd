package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type CreateWorkspaceRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=63"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Currency    string  `json:"currency,omitempty" binding:"omitempty,len=3"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=63"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Currency    *string `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// SlugRequest names a workspace by slug (get, select).
type SlugRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type WorkspaceResponse struct {
	ID          int64     `json:"id,string"`
	OwnerID     int64     `json:"owner_id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(ws *model.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:          ws.ID,
		OwnerID:     ws.OwnerID,
		Name:        ws.Name,
		Slug:        ws.Slug,
		Description: ws.Description,
		Currency:    ws.Currency,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

type WorkspaceBrief struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ToWorkspaceBriefs(workspaces []model.Workspace) []WorkspaceBrief {
	out := make([]WorkspaceBrief, len(workspaces))
	for i, ws := range workspaces {
		out[i] = WorkspaceBrief{ID: ws.ID, Name: ws.Name, Slug: ws.Slug}
	}
	return out
}

// MembershipResponse is the resolved workspace context returned by select and current.
type MembershipResponse struct {
	Workspace   *WorkspaceResponse `json:"workspace"`
	Role        model.Role         `json:"role"`
	Permissions []model.Permission `json:"permissions"`
}

func ToMembershipResponse(m *model.Membership) *MembershipResponse {
	return &MembershipResponse{
		Workspace:   ToWorkspaceResponse(&m.Workspace),
		Role:        m.Role,
		Permissions: m.Permissions,
	}
}

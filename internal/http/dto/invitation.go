package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type CreateInvitationRequest struct {
	Email string     `json:"email" binding:"required,email,max=255"`
	Role  model.Role `json:"role" binding:"required"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

type InvitationResponse struct {
	ID         int64                  `json:"id,string"`
	Email      string                 `json:"email"`
	Role       model.Role             `json:"role"`
	Status     model.InvitationStatus `json:"status"`
	InvitedBy  *int64                 `json:"invited_by,omitempty,string"`
	ExpiresAt  time.Time              `json:"expires_at"`
	CreatedAt  time.Time              `json:"created_at"`
	AcceptedAt *time.Time             `json:"accepted_at,omitempty"`
}

func ToInvitationResponse(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         inv.ID,
		Email:      inv.Email,
		Role:       inv.Role,
		Status:     inv.Status,
		InvitedBy:  inv.InvitedBy,
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
		AcceptedAt: inv.AcceptedAt,
	}
}

func ToInvitationResponses(invitations []model.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		out[i] = ToInvitationResponse(&invitations[i])
	}
	return out
}

type CreateInvitationResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	InviteURL  string             `json:"invite_url"`
}

type ValidateInvitationResponse struct {
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	Valid     bool       `json:"valid"`
}

type AcceptInvitationResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	Workspace  *WorkspaceResponse `json:"workspace"`
}

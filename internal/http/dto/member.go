package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type UpdateRoleRequest struct {
	UserID int64      `json:"user_id,string" binding:"required"`
	Role   model.Role `json:"role" binding:"required"`
}

type RemoveMemberRequest struct {
	UserID int64 `json:"user_id,string" binding:"required"`
}

type MemberResponse struct {
	UserID    int64      `json:"user_id,string"`
	Role      model.Role `json:"role"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time  `json:"joined_at"`
}

func ToMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		Role:      m.Role,
		Name:      m.Name,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		JoinedAt:  m.CreatedAt,
	}
}

func ToMemberResponses(members []model.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i := range members {
		out[i] = ToMemberResponse(&members[i])
	}
	return out
}

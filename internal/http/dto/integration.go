package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type ProviderRequest struct {
	Provider model.Provider `json:"provider" binding:"required"`
}

type IntegrationResponse struct {
	ID          int64          `json:"id,string"`
	Provider    model.Provider `json:"provider"`
	AccountID   string         `json:"account_id"`
	AccountName string         `json:"account_name"`
	Scopes      []string       `json:"scopes"`
	ConnectedBy int64          `json:"connected_by,string"`
	ConnectedAt time.Time      `json:"connected_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func ToIntegrationResponses(integrations []model.Integration) []IntegrationResponse {
	out := make([]IntegrationResponse, len(integrations))
	for i, in := range integrations {
		out[i] = IntegrationResponse{
			ID:          in.ID,
			Provider:    in.Provider,
			AccountID:   in.ExternalAccountID,
			AccountName: in.ExternalAccountName,
			Scopes:      in.Scopes,
			ConnectedBy: in.ConnectedBy,
			ConnectedAt: in.CreatedAt,
			UpdatedAt:   in.UpdatedAt,
		}
	}
	return out
}

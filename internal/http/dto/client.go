package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type ClientRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Address  *string `json:"address,omitempty" binding:"omitempty,max=2000"`
	Currency string  `json:"currency,omitempty" binding:"omitempty,len=3"`
}

type UpdateClientRequest struct {
	ID int64 `json:"id,string" binding:"required"`
	ClientRequest
}

// IDRequest is the input of procedures that address one resource.
type IDRequest struct {
	ID int64 `json:"id,string" binding:"required"`
}

type ClientResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToClientResponse(c *model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Currency:  c.Currency,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToClientResponses(clients []model.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

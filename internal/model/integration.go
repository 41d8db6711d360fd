package model

import "time"

// Provider represents the integration provider type
type Provider string

const (
	ProviderGitLab Provider = "gitlab"
	ProviderGitHub Provider = "github"
	ProviderLinear Provider = "linear"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderGitHub, ProviderLinear, ProviderGitLab:
		return true
	}
	return false
}

type Integration struct {
	ID                  int64      `json:"id"`
	WorkspaceID         int64      `json:"workspace_id"`
	Provider            Provider   `json:"provider"`
	ExternalAccountID   string     `json:"external_account_id"`
	ExternalAccountName string     `json:"external_account_name"`
	AccessToken         string     `json:"-"` // never expose tokens in API
	RefreshToken        *string    `json:"-"`
	ExpiresAt           *time.Time `json:"-"`
	Scopes              []string   `json:"scopes"`
	ConnectedBy         int64      `json:"connected_by"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Repository is a code repository (GitHub) or project (GitLab) visible to an integration.
type Repository struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	URL        string `json:"url"`
	Private    bool   `json:"private"`
}

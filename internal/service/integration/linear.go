package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"hourline.app/server/core/config"
	"hourline.app/server/internal/model"
)

const (
	linearAuthURL    = "https://linear.app/oauth/authorize"
	linearTokenURL   = "https://api.linear.app/oauth/token"
	linearGraphQLURL = "https://api.linear.app/graphql"
)

const linearViewerQuery = `query { viewer { id name email organization { id name } } }`

type linearProvider struct {
	oauthApp
	graphqlURL string
}

// NewLinearProvider builds the Linear provider. Empty endpoint values fall back to Linear's hosts.
func NewLinearProvider(cfg config.OAuthAppConfig, redirectURL string, endpoint *oauth2.Endpoint, graphqlURL string) Provider {
	ep := oauth2.Endpoint{AuthURL: linearAuthURL, TokenURL: linearTokenURL}
	if endpoint != nil {
		ep = *endpoint
	}
	if graphqlURL == "" {
		graphqlURL = linearGraphQLURL
	}
	return &linearProvider{
		graphqlURL: graphqlURL,
		oauthApp: oauthApp{cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     ep,
		}},
	}
}

func (p *linearProvider) Name() model.Provider {
	return model.ProviderLinear
}

type linearViewerResponse struct {
	Data struct {
		Viewer struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			Email        string `json:"email"`
			Organization struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"organization"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (p *linearProvider) Account(ctx context.Context, tok *oauth2.Token) (Account, error) {
	body, err := json.Marshal(map[string]string{"query": linearViewerQuery})
	if err != nil {
		return Account{}, fmt.Errorf("encoding linear query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return Account{}, fmt.Errorf("building linear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("querying linear viewer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Account{}, fmt.Errorf("linear viewer query returned %d: %s", resp.StatusCode, snippet)
	}

	var out linearViewerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Account{}, fmt.Errorf("decoding linear viewer: %w", err)
	}
	if len(out.Errors) > 0 {
		return Account{}, fmt.Errorf("linear viewer query: %s", out.Errors[0].Message)
	}

	viewer := out.Data.Viewer
	if viewer.ID == "" {
		return Account{}, fmt.Errorf("linear viewer query returned no user")
	}
	name := viewer.Name
	if org := viewer.Organization.Name; org != "" {
		name = viewer.Name + " (" + org + ")"
	}
	return Account{ID: viewer.ID, Name: name}, nil
}

func (p *linearProvider) Repositories(context.Context, *oauth2.Token) ([]model.Repository, error) {
	return nil, ErrRepositoriesUnsupported
}

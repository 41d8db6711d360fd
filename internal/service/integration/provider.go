package integration

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"hourline.app/server/internal/model"
)

var ErrRepositoriesUnsupported = errors.New("provider does not expose repositories")

// Account is the provider-side identity a token belongs to.
type Account struct {
	ID   string
	Name string
}

// Provider wraps one OAuth application and the provider API calls made with its tokens.
type Provider interface {
	Name() model.Provider
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// TokenSource refreshes tok when it has expired and a refresh token is available.
	TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource
	Account(ctx context.Context, tok *oauth2.Token) (Account, error)
	Repositories(ctx context.Context, tok *oauth2.Token) ([]model.Repository, error)
}

// oauthApp carries the oauth2 plumbing shared by every provider.
type oauthApp struct {
	cfg *oauth2.Config
}

func (a oauthApp) AuthCodeURL(state string) string {
	return a.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (a oauthApp) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return a.cfg.Exchange(ctx, code)
}

func (a oauthApp) Scopes() []string {
	return a.cfg.Scopes
}

func (a oauthApp) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return a.cfg.TokenSource(ctx, tok)
}

// Registry holds the configured providers by name.
type Registry map[model.Provider]Provider

func NewRegistry(providers ...Provider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		r[p.Name()] = p
	}
	return r
}

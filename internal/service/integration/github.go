package integration

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"hourline.app/server/core/config"
	"hourline.app/server/internal/model"
)

const maxGitHubRepoPages = 10

type githubProvider struct {
	oauthApp
	apiBaseURL *url.URL
}

// NewGitHubProvider builds the GitHub provider. apiBaseURL overrides
// https://api.github.com/ and is empty in production.
func NewGitHubProvider(cfg config.OAuthAppConfig, redirectURL, apiBaseURL string, endpoint *oauth2.Endpoint) (Provider, error) {
	ep := githuboauth.Endpoint
	if endpoint != nil {
		ep = *endpoint
	}
	p := &githubProvider{oauthApp: oauthApp{cfg: &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     ep,
		RedirectURL:  redirectURL,
		Scopes:       cfg.Scopes,
	}}}
	if apiBaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(apiBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github api url: %w", err)
		}
		p.apiBaseURL = u
	}
	return p, nil
}

func (p *githubProvider) Name() model.Provider {
	return model.ProviderGitHub
}

func (p *githubProvider) client(ctx context.Context, tok *oauth2.Token) *github.Client {
	client := github.NewClient(p.cfg.Client(ctx, tok))
	if p.apiBaseURL != nil {
		client.BaseURL = p.apiBaseURL
	}
	return client
}

func (p *githubProvider) Account(ctx context.Context, tok *oauth2.Token) (Account, error) {
	user, _, err := p.client(ctx, tok).Users.Get(ctx, "")
	if err != nil {
		return Account{}, fmt.Errorf("getting github user: %w", err)
	}
	name := user.GetLogin()
	if user.GetName() != "" {
		name = user.GetName() + " (" + user.GetLogin() + ")"
	}
	return Account{
		ID:   strconv.FormatInt(user.GetID(), 10),
		Name: name,
	}, nil
}

func (p *githubProvider) Repositories(ctx context.Context, tok *oauth2.Token) ([]model.Repository, error) {
	client := p.client(ctx, tok)
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []model.Repository
	for page := 0; page < maxGitHubRepoPages; page++ {
		pageRepos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing github repositories: %w", err)
		}
		for _, r := range pageRepos {
			repos = append(repos, model.Repository{
				ExternalID: strconv.FormatInt(r.GetID(), 10),
				Name:       r.GetName(),
				FullName:   r.GetFullName(),
				URL:        r.GetHTMLURL(),
				Private:    r.GetPrivate(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

package integration

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/oauth2"

	"hourline.app/server/core/config"
	"hourline.app/server/internal/model"
)

const maxGitLabProjectPages = 10

type gitLabProvider struct {
	oauthApp
	baseURL string
}

// NewGitLabProvider builds the provider for gitlab.com or a self-managed instance at cfg.BaseURL.
func NewGitLabProvider(cfg config.GitLabConfig, redirectURL string) Provider {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	return &gitLabProvider{
		baseURL: baseURL,
		oauthApp: oauthApp{cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  baseURL + "/oauth/authorize",
				TokenURL: baseURL + "/oauth/token",
			},
		}},
	}
}

func (p *gitLabProvider) Name() model.Provider {
	return model.ProviderGitLab
}

func (p *gitLabProvider) client(ctx context.Context, tok *oauth2.Token) (*gitlab.Client, error) {
	client, err := gitlab.NewOAuthClient(
		tok.AccessToken,
		gitlab.WithBaseURL(p.baseURL+"/api/v4"),
		gitlab.WithHTTPClient(p.cfg.Client(ctx, tok)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return client, nil
}

func (p *gitLabProvider) Account(ctx context.Context, tok *oauth2.Token) (Account, error) {
	client, err := p.client(ctx, tok)
	if err != nil {
		return Account{}, err
	}
	user, _, err := client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return Account{}, fmt.Errorf("getting gitlab user: %w", err)
	}
	name := user.Username
	if user.Name != "" {
		name = user.Name + " (" + user.Username + ")"
	}
	return Account{
		ID:   strconv.FormatInt(int64(user.ID), 10),
		Name: name,
	}, nil
}

func (p *gitLabProvider) Repositories(ctx context.Context, tok *oauth2.Token) ([]model.Repository, error) {
	client, err := p.client(ctx, tok)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListProjectsOptions{
		Membership: gitlab.Ptr(true),
		OrderBy:    gitlab.Ptr("last_activity_at"),
		ListOptions: gitlab.ListOptions{
			PerPage: 100,
			Page:    1,
		},
	}

	var repos []model.Repository
	for page := 0; page < maxGitLabProjectPages; page++ {
		pageProjects, resp, err := client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing gitlab projects: %w", err)
		}
		for _, proj := range pageProjects {
			repos = append(repos, model.Repository{
				ExternalID: strconv.FormatInt(int64(proj.ID), 10),
				Name:       proj.Name,
				FullName:   proj.PathWithNamespace,
				URL:        proj.WebURL,
				Private:    proj.Visibility != gitlab.PublicVisibility,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"golang.org/x/oauth2"

	"hourline.app/server/core/config"
)

type fakeProject struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
	Visibility        string `json:"visibility"`
}

// fakeProviderAPI serves the OAuth token endpoint plus the GitHub, GitLab and Linear
// API calls the providers make.
type fakeProviderAPI struct {
	server *httptest.Server

	mu            sync.Mutex
	exchangeFails bool
	projects      []fakeProject
	authHeaders   []string
	grantTypes    []string
}

func newFakeProviderAPI() *fakeProviderAPI {
	f := &fakeProviderAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", f.handleToken)
	mux.HandleFunc("/api/v4/user", f.record(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 5, "username": "jdoe", "name": "Jane Doe"})
	}))
	mux.HandleFunc("/api/v4/projects", f.record(f.handleProjects))
	mux.HandleFunc("/github/user", f.record(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 901, "login": "octo", "name": "Octo Cat"})
	}))
	mux.HandleFunc("/github/user/repos", f.record(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 1, "name": "api", "full_name": "octo/api", "html_url": "https://github.com/octo/api", "private": true},
			{"id": 2, "name": "site", "full_name": "octo/site", "html_url": "https://github.com/octo/site", "private": false},
		})
	}))
	mux.HandleFunc("/graphql", f.record(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]any{"data": map[string]any{"viewer": map[string]any{
			"id":           "lin-user-1",
			"name":         "Lin Ear",
			"email":        "lin@example.com",
			"organization": map[string]any{"id": "org-1", "name": "Acme"},
		}}})
	}))
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeProviderAPI) close() {
	f.server.Close()
}

func (f *fakeProviderAPI) endpoint() *oauth2.Endpoint {
	return &oauth2.Endpoint{
		AuthURL:   f.server.URL + "/oauth/authorize",
		TokenURL:  f.server.URL + "/oauth/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (f *fakeProviderAPI) gitLab() Provider {
	return NewGitLabProvider(config.GitLabConfig{
		OAuthAppConfig: config.OAuthAppConfig{ClientID: "gl-client", ClientSecret: "gl-secret", Scopes: []string{"read_user", "read_api"}},
		BaseURL:        f.server.URL,
	}, "http://api.test/api/integrations/gitlab/callback")
}

func (f *fakeProviderAPI) gitHub() Provider {
	p, err := NewGitHubProvider(
		config.OAuthAppConfig{ClientID: "gh-client", ClientSecret: "gh-secret", Scopes: []string{"repo"}},
		"http://api.test/api/integrations/github/callback",
		f.server.URL+"/github",
		f.endpoint(),
	)
	if err != nil {
		panic(err)
	}
	return p
}

func (f *fakeProviderAPI) linear() Provider {
	return NewLinearProvider(
		config.OAuthAppConfig{ClientID: "lin-client", ClientSecret: "lin-secret", Scopes: []string{"read"}},
		"http://api.test/api/integrations/linear/callback",
		f.endpoint(),
		f.server.URL+"/graphql",
	)
}

func (f *fakeProviderAPI) record(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		f.mu.Unlock()
		h(w, r)
	}
}

func (f *fakeProviderAPI) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	grant := r.PostForm.Get("grant_type")

	f.mu.Lock()
	f.grantTypes = append(f.grantTypes, grant)
	fails := f.exchangeFails
	f.mu.Unlock()

	switch {
	case fails:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"error":"invalid_grant"}`)
	case grant == "refresh_token":
		writeJSON(w, map[string]any{
			"access_token":  "refreshed-token",
			"token_type":    "bearer",
			"refresh_token": "next-refresh",
			"expires_in":    7200,
		})
	default:
		writeJSON(w, map[string]any{
			"access_token":  "access-token",
			"token_type":    "bearer",
			"refresh_token": "refresh-token",
			"expires_in":    7200,
			"scope":         "read_user read_api",
		})
	}
}

func (f *fakeProviderAPI) handleProjects(w http.ResponseWriter, r *http.Request) {
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if pageNum == 0 {
		pageNum = 1
	}
	if perPage == 0 {
		perPage = 100
	}

	start := (pageNum - 1) * perPage
	if start >= len(f.projects) {
		writeJSON(w, []fakeProject{})
		return
	}
	end := min(start+perPage, len(f.projects))
	if end < len(f.projects) {
		w.Header().Set("X-Next-Page", strconv.Itoa(pageNum+1))
	}
	writeJSON(w, f.projects[start:end])
}

func (f *fakeProviderAPI) lastAuthHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.authHeaders) == 0 {
		return ""
	}
	return f.authHeaders[len(f.authHeaders)-1]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

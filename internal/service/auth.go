package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"hourline.app/server/common/id"
	"hourline.app/server/core/config"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")
)

// WorkOSClient is the subset of the WorkOS user management API used for login.
type WorkOSClient interface {
	GetAuthorizationURL(opts usermanagement.GetAuthorizationURLOpts) (string, error)
	AuthenticateWithCode(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error)
}

type workOSClient struct{}

// NewWorkOSClient configures the package level WorkOS client with the API key.
func NewWorkOSClient(apiKey string) WorkOSClient {
	usermanagement.SetAPIKey(apiKey)
	return workOSClient{}
}

func (workOSClient) GetAuthorizationURL(opts usermanagement.GetAuthorizationURLOpts) (string, error) {
	u, err := usermanagement.GetAuthorizationURL(opts)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (workOSClient) AuthenticateWithCode(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
	return usermanagement.AuthenticateWithCode(ctx, opts)
}

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	workos       WorkOSClient
	emails       EmailService
	cfg          config.WorkOSConfig
	dashboardURL string
	now          func() time.Time
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	workos WorkOSClient,
	emails EmailService,
	cfg config.WorkOSConfig,
	dashboardURL string,
) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		workos:       workos,
		emails:       emails,
		cfg:          cfg,
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := s.workos.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	authResponse, err := s.workos.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	workosUser := authResponse.User

	var avatarURL *string
	if workosUser.ProfilePictureURL != "" {
		avatarURL = &workosUser.ProfilePictureURL
	}

	firstLogin := false
	if _, err := s.userStore.GetByEmail(ctx, workosUser.Email); errors.Is(err, store.ErrNotFound) {
		firstLogin = true
	}

	user := &model.User{
		ID:        id.New(),
		Name:      buildUserName(workosUser),
		Email:     workosUser.Email,
		AvatarURL: avatarURL,
		WorkOSID:  &workosUser.ID,
	}

	if err := s.userStore.UpsertByWorkOSID(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
			"workos_id", workosUser.ID,
		)
		return nil, nil, fmt.Errorf("upserting user: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(model.SessionDuration),
	}
	if sid := workOSSessionID(authResponse.AccessToken); sid != "" {
		session.WorkOSSessionID = &sid
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	if firstLogin && s.emails != nil {
		welcome := model.EmailMessage{
			To:       user.Email,
			Template: model.EmailTemplateWelcome,
			Data: map[string]string{
				"name":          user.Name,
				"dashboard_url": s.dashboardURL,
			},
		}
		if err := s.emails.Enqueue(ctx, welcome); err != nil {
			slog.WarnContext(ctx, "failed to enqueue welcome email", "error", err, "user_id", user.ID)
		}
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"email", user.Email,
		"session_id", session.ID,
		"first_login", firstLogin,
	)

	return user, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// workOSSessionID reads the unverified "sid" claim of a WorkOS access token.
func workOSSessionID(accessToken string) string {
	if accessToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"hourline.app/server/common/id"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

const InviteTokenLength = 32

var (
	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation has expired")
	ErrInviteAlreadyUsed   = errors.New("invitation has already been used")
	ErrInviteRevoked       = errors.New("invitation has been revoked")
	ErrEmailMismatch       = errors.New("authenticated email does not match invitation")
	ErrInvitePendingExists = errors.New("a pending invitation already exists for this email")
	ErrAlreadyMember       = errors.New("user is already a member of this workspace")
)

type InvitationService interface {
	// Create stores a pending invitation, queues the invitation email and returns the accept URL.
	Create(ctx context.Context, actor Actor, email string, role model.Role) (*model.Invitation, string, error)
	ValidateToken(ctx context.Context, token string) (*model.Invitation, error)
	Accept(ctx context.Context, token string, user *model.User) (*model.Invitation, *model.Workspace, error)
	Revoke(ctx context.Context, workspaceID, id int64) (*model.Invitation, error)
	List(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	ExpireOld(ctx context.Context) error
}

type invitationService struct {
	invStore     store.InvitationStore
	userStore    store.UserStore
	memberStore  store.MemberStore
	txRunner     TxRunner
	emails       EmailService
	dashboardURL string
	now          func() time.Time
}

func NewInvitationService(
	invStore store.InvitationStore,
	userStore store.UserStore,
	memberStore store.MemberStore,
	txRunner TxRunner,
	emails EmailService,
	dashboardURL string,
) InvitationService {
	return &invitationService{
		invStore:     invStore,
		userStore:    userStore,
		memberStore:  memberStore,
		txRunner:     txRunner,
		emails:       emails,
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
}

func (s *invitationService) Create(ctx context.Context, actor Actor, email string, role model.Role) (*model.Invitation, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if role == "" {
		role = model.RoleMember
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, "", ErrInvalidRole
	}
	if role == model.RoleAdmin && actor.Role != model.RoleOwner {
		return nil, "", ErrForbidden
	}

	existing, err := s.invStore.GetPendingByEmail(ctx, actor.WorkspaceID(), email)
	if err == nil && existing.IsValid() {
		return nil, "", ErrInvitePendingExists
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("checking pending invitations: %w", err)
	}

	if user, err := s.userStore.GetByEmail(ctx, email); err == nil {
		if _, err := s.memberStore.Get(ctx, actor.WorkspaceID(), user.ID); err == nil {
			return nil, "", ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, "", fmt.Errorf("checking membership: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("looking up invitee: %w", err)
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	invitedBy := actor.UserID
	inv := &model.Invitation{
		ID:          id.New(),
		WorkspaceID: actor.WorkspaceID(),
		Email:       email,
		Role:        role,
		Token:       token,
		Status:      model.InvitationStatusPending,
		InvitedBy:   &invitedBy,
		ExpiresAt:   s.now().Add(model.InvitationTTL),
	}

	if err := s.invStore.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/invite?token=%s", s.dashboardURL, url.QueryEscape(token))

	wsID := actor.WorkspaceID()
	if err := s.emails.Enqueue(ctx, model.EmailMessage{
		To:       email,
		Template: model.EmailTemplateInvitation,
		Data: map[string]string{
			"workspace_name": actor.Workspace.Name,
			"inviter_name":   actor.UserName,
			"role":           string(role),
			"invite_url":     inviteURL,
			"expires_at":     inv.ExpiresAt.UTC().Format("2 January 2006"),
		},
		WorkspaceID: &wsID,
	}); err != nil {
		// The invitation stays valid; the link can be shared by hand.
		slog.ErrorContext(ctx, "failed to enqueue invitation email",
			"error", err,
			"invitation_id", inv.ID,
		)
	}

	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"workspace_id", inv.WorkspaceID,
		"role", role,
		"expires_at", inv.ExpiresAt,
	)

	return inv, inviteURL, nil
}

func (s *invitationService) ValidateToken(ctx context.Context, token string) (*model.Invitation, error) {
	if token == "" {
		return nil, ErrInviteNotFound
	}

	inv, err := s.invStore.GetValidByToken(ctx, token)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting invitation: %w", err)
	}

	// Not valid: look it up again to tell the caller why.
	inv, err = s.invStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	switch inv.Status {
	case model.InvitationStatusAccepted:
		return nil, ErrInviteAlreadyUsed
	case model.InvitationStatusRevoked:
		return nil, ErrInviteRevoked
	case model.InvitationStatusExpired:
		return nil, ErrInviteExpired
	}
	if !s.now().Before(inv.ExpiresAt) {
		return nil, ErrInviteExpired
	}
	return nil, ErrInviteNotFound
}

func (s *invitationService) Accept(ctx context.Context, token string, user *model.User) (*model.Invitation, *model.Workspace, error) {
	inv, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	if !strings.EqualFold(inv.Email, user.Email) {
		slog.WarnContext(ctx, "email mismatch on invitation acceptance",
			"invitation_id", inv.ID,
			"user_id", user.ID,
		)
		return nil, nil, ErrEmailMismatch
	}

	var (
		accepted *model.Invitation
		ws       *model.Workspace
	)
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Members().Get(ctx, inv.WorkspaceID, user.ID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking membership: %w", err)
		}

		if err := stores.Members().Add(ctx, inv.WorkspaceID, user.ID, inv.Role); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("adding member: %w", err)
		}

		var err error
		accepted, err = stores.Invitations().Accept(ctx, inv.ID, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteAlreadyUsed
			}
			return fmt.Errorf("accepting invitation: %w", err)
		}

		ws, err = stores.Workspaces().GetByID(ctx, inv.WorkspaceID)
		if err != nil {
			return fmt.Errorf("getting workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "invitation accepted",
		"invitation_id", inv.ID,
		"workspace_id", inv.WorkspaceID,
		"user_id", user.ID,
		"role", inv.Role,
	)

	return accepted, ws, nil
}

func (s *invitationService) Revoke(ctx context.Context, workspaceID, id int64) (*model.Invitation, error) {
	inv, err := s.invStore.Revoke(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("revoking invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation revoked",
		"invitation_id", id,
		"workspace_id", workspaceID,
	)

	return inv, nil
}

func (s *invitationService) List(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	invitations, err := s.invStore.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invitations, nil
}

func (s *invitationService) ExpireOld(ctx context.Context) error {
	if err := s.invStore.ExpireOld(ctx); err != nil {
		return fmt.Errorf("expiring invitations: %w", err)
	}
	return nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

package store

import (
	"context"
	"errors"
	"time"

	"hourline.app/server/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique constraint
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference is returned when a write points at a row that does not exist
	ErrInvalidReference = errors.New("invalid reference")
	// ErrCheckViolation is returned when a write fails a CHECK constraint
	ErrCheckViolation = errors.New("check constraint violated")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}

// WorkspaceStore defines the contract for workspace data access
type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error
	Update(ctx context.Context, ws *model.Workspace) error
	ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error)
	// NextInvoiceSeq atomically increments and returns the workspace's invoice counter.
	NextInvoiceSeq(ctx context.Context, id int64) (int64, error)
}

// MemberStore defines the contract for workspace membership data access
type MemberStore interface {
	Get(ctx context.Context, workspaceID, userID int64) (model.Role, error)
	Add(ctx context.Context, workspaceID, userID int64, role model.Role) error
	List(ctx context.Context, workspaceID int64) ([]model.Member, error)
	UpdateRole(ctx context.Context, workspaceID, userID int64, role model.Role) error
	Remove(ctx context.Context, workspaceID, userID int64) error
	CountOwners(ctx context.Context, workspaceID int64) (int64, error)
}

// ClientStore defines the contract for client data access
type ClientStore interface {
	GetByID(ctx context.Context, workspaceID, id int64) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	List(ctx context.Context, workspaceID int64) ([]model.Client, error)
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, workspaceID, id int64) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	SetArchivedAt(ctx context.Context, workspaceID, id int64, archivedAt *time.Time) (*model.Project, error)
	List(ctx context.Context, workspaceID int64, includeArchived bool) ([]model.Project, error)
}

// TimeEntryFilter narrows a time entry listing. Zero values are ignored.
type TimeEntryFilter struct {
	UserID     *int64
	ProjectID  *int64
	MonthDate  *time.Time
	WeekYear   *int
	WeekNumber *int
	Limit      int
}

// TimeEntryStore defines the contract for time entry data access
type TimeEntryStore interface {
	GetByID(ctx context.Context, workspaceID, id int64) (*model.TimeEntry, error)
	GetLive(ctx context.Context, workspaceID, userID int64) (*model.TimeEntry, error)
	Create(ctx context.Context, entry *model.TimeEntry) error
	Stop(ctx context.Context, id int64, endAt time.Time, durationMs int64) (*model.TimeEntry, error)
	Update(ctx context.Context, entry *model.TimeEntry) error
	Delete(ctx context.Context, workspaceID, id int64) error
	List(ctx context.Context, workspaceID int64, filter TimeEntryFilter) ([]model.TimeEntry, error)
	ListCompletedForProjects(ctx context.Context, workspaceID int64, month time.Time, projectIDs []int64) ([]model.TimeEntry, error)
	SummarizeByProject(ctx context.Context, workspaceID, userID int64, month time.Time) ([]model.ProjectTotal, error)
}

// InvoiceStore defines the contract for invoice data access.
// Reads return invoices with their items loaded.
type InvoiceStore interface {
	GetByID(ctx context.Context, workspaceID, id int64) (*model.Invoice, error)
	GetByShareToken(ctx context.Context, token string) (*model.Invoice, error)
	Create(ctx context.Context, inv *model.Invoice) error
	// Update rewrites a draft invoice and replaces its items.
	Update(ctx context.Context, inv *model.Invoice) error
	UpdateStatus(ctx context.Context, inv *model.Invoice) error
	List(ctx context.Context, workspaceID int64, status *model.InvoiceStatus) ([]model.Invoice, error)
}

// InvitationStore defines the contract for invitation data access
type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, workspaceID, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetValidByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetPendingByEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	Accept(ctx context.Context, id int64, userID int64) (*model.Invitation, error)
	Revoke(ctx context.Context, workspaceID, id int64) (*model.Invitation, error)
	List(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	ExpireOld(ctx context.Context) error
}

// IntegrationStore defines the contract for integration data access
type IntegrationStore interface {
	GetByWorkspaceAndProvider(ctx context.Context, workspaceID int64, provider model.Provider) (*model.Integration, error)
	Upsert(ctx context.Context, integration *model.Integration) error
	Delete(ctx context.Context, workspaceID int64, provider model.Provider) error
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Integration, error)
}

// PaymentEventStore defines the contract for payment webhook events
type PaymentEventStore interface {
	// Insert stores the event and reports false when the provider event id was already recorded.
	Insert(ctx context.Context, event *model.PaymentEvent) (bool, error)
}

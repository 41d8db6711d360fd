package service

import (
	"github.com/redis/go-redis/v9"

	"hourline.app/server/core/config"
	"hourline.app/server/internal/service/integration"
	"hourline.app/server/internal/store"
)

// Dependencies are the long-lived clients the API server shares between services.
type Dependencies struct {
	Stores       *store.Stores
	TxRunner     TxRunner
	Database     Pinger
	Redis        *redis.Client
	EmailQueue   EmailQueue
	WorkOS       WorkOSClient
	Providers    integration.Registry
	StateSigner  *integration.StateSigner
	WorkOSConfig config.WorkOSConfig
	DashboardURL string
}

type Services struct {
	deps  Dependencies
	email EmailService
}

func NewServices(deps Dependencies) *Services {
	return &Services{
		deps:  deps,
		email: NewEmailService(deps.EmailQueue),
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.deps.Stores.Users(), s.deps.Stores.Workspaces())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.deps.Stores.Users(),
		s.deps.Stores.Sessions(),
		s.deps.WorkOS,
		s.email,
		s.deps.WorkOSConfig,
		s.deps.DashboardURL,
	)
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(
		s.deps.Stores.Workspaces(),
		s.deps.Stores.Members(),
		s.deps.TxRunner,
		NewRedisRecentWorkspaceCache(s.deps.Redis),
	)
}

func (s *Services) Team() TeamService {
	return NewTeamService(s.deps.Stores.Members())
}

func (s *Services) Clients() ClientService {
	return NewClientService(s.deps.Stores.Clients())
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.deps.Stores.Projects(), s.deps.Stores.Clients())
}

func (s *Services) TimeEntries() TimeEntryService {
	return NewTimeEntryService(s.deps.Stores.TimeEntries(), s.deps.Stores.Projects())
}

func (s *Services) Invoices() InvoiceService {
	return NewInvoiceService(
		s.deps.Stores.Invoices(),
		s.deps.Stores.Clients(),
		s.deps.TxRunner,
		s.email,
		s.deps.DashboardURL,
	)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.deps.Stores.Invitations(),
		s.deps.Stores.Users(),
		s.deps.Stores.Members(),
		s.deps.TxRunner,
		s.email,
		s.deps.DashboardURL,
	)
}

func (s *Services) Emails() EmailService {
	return s.email
}

func (s *Services) Integrations() integration.Service {
	return integration.NewService(
		s.deps.Providers,
		s.deps.StateSigner,
		s.deps.Stores.Integrations(),
		s.deps.Stores.Workspaces(),
		s.deps.Stores.Members(),
	)
}

func (s *Services) Payments() PaymentService {
	return NewPaymentService(s.deps.Stores.PaymentEvents())
}

func (s *Services) Keepalive() KeepaliveService {
	return NewKeepaliveService(
		s.deps.Database,
		RedisPinger{Client: s.deps.Redis},
		s.deps.Stores.Sessions(),
		s.Invitations(),
	)
}

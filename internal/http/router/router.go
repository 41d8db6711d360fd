package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/observability"
	"hourline.app/server/internal/service"
)

const rpcPrefix = "/api/v1/rpc"

type RouterConfig struct {
	DashboardURL string
	CronSecret   string
	Cookies      middleware.CookieConfig
}

// procedure is one RPC entry point. Every procedure is POST <rpcPrefix>/<name>
// with a JSON body and requires an authenticated session.
type procedure struct {
	name       string
	input      any
	workspace  bool
	permission model.Permission
	handle     gin.HandlerFunc
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	authHandler := handler.NewAuthHandler(services.Auth(), services.Users(), cfg.Cookies, cfg.DashboardURL)
	requireAuth := middleware.RequireAuth(services.Auth(), cfg.Cookies)

	auth := router.Group("/auth")
	{
		auth.GET("/login", authHandler.Login)
		auth.GET("/callback", authHandler.Callback)
		auth.POST("/logout", middleware.OptionalAuth(services.Auth()), authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	invitationHandler := handler.NewInvitationHandler(services.Invitations())
	integrationHandler := handler.NewIntegrationHandler(services.Integrations(), cfg.DashboardURL)
	invoiceHandler := handler.NewInvoiceHandler(services.Invoices())
	procedures := rpcProcedures(services, cfg, invitationHandler, integrationHandler, invoiceHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/invitations/validate", invitationHandler.Validate)
		v1.GET("/public/invoices/:token", invoiceHandler.Public)
		v1.GET("/integrations/:provider/connect",
			requireAuth,
			middleware.RequireWorkspace(services.Workspaces()),
			middleware.RequirePermission(model.PermIntegrationsManage),
			integrationHandler.Connect)

		schemaHandler := handler.NewSchemaHandler(rpcPrefix, procedureDocs(procedures))
		v1.GET("/schema", schemaHandler.List)
		v1.GET("/schema/:procedure", schemaHandler.Get)
	}

	rpcRouter(router.Group(rpcPrefix, requireAuth), services.Workspaces(), procedures)

	api := router.Group("/api")
	{
		api.GET("/integrations/:provider/callback", integrationHandler.Callback)

		paymentHandler := handler.NewPaymentHandler(services.Payments())
		api.POST("/webhooks/payments", paymentHandler.Webhook)

		cronHandler := handler.NewCronHandler(services.Keepalive())
		cron := api.Group("/cron", middleware.RequireCronSecret(cfg.CronSecret))
		cron.GET("/keepalive", cronHandler.Keepalive)
		cron.GET("/cleanup", cronHandler.Cleanup)
	}
}

// rpcRouter registers procedures, putting tenant resolution and the permission
// check in front of the ones that need them.
func rpcRouter(rg *gin.RouterGroup, workspaces middleware.WorkspaceResolver, procedures []procedure) {
	requireWorkspace := middleware.RequireWorkspace(workspaces)
	for _, p := range procedures {
		var chain []gin.HandlerFunc
		if p.workspace {
			chain = append(chain, requireWorkspace)
		}
		if p.permission != "" {
			chain = append(chain, middleware.RequirePermission(p.permission))
		}
		chain = append(chain, p.handle)
		rg.POST("/"+p.name, chain...)
	}
}

func procedureDocs(procedures []procedure) []handler.ProcedureDoc {
	docs := make([]handler.ProcedureDoc, len(procedures))
	for i, p := range procedures {
		docs[i] = handler.ProcedureDoc{
			Name:       p.name,
			Input:      p.input,
			Permission: p.permission,
			Workspace:  p.workspace,
		}
	}
	return docs
}

func rpcProcedures(
	services *service.Services,
	cfg RouterConfig,
	invitations *handler.InvitationHandler,
	integrations *handler.IntegrationHandler,
	invoices *handler.InvoiceHandler,
) []procedure {
	workspaces := handler.NewWorkspaceHandler(services.Workspaces(), cfg.Cookies)
	team := handler.NewTeamHandler(services.Team())
	clients := handler.NewClientHandler(services.Clients())
	projects := handler.NewProjectHandler(services.Projects())
	entries := handler.NewEntryHandler(services.TimeEntries())

	return []procedure{
		{name: "workspaces.create", input: &dto.CreateWorkspaceRequest{}, handle: workspaces.Create},
		{name: "workspaces.list", handle: workspaces.List},
		{name: "workspaces.get", input: &dto.SlugRequest{}, handle: workspaces.Get},
		{name: "workspaces.update", input: &dto.UpdateWorkspaceRequest{}, workspace: true, permission: model.PermWorkspaceManage, handle: workspaces.Update},
		{name: "workspaces.select", input: &dto.SlugRequest{}, handle: workspaces.Select},
		{name: "workspaces.current", handle: workspaces.Current},

		{name: "members.list", workspace: true, handle: team.List},
		{name: "members.updateRole", input: &dto.UpdateRoleRequest{}, workspace: true, permission: model.PermMembersManage, handle: team.UpdateRole},
		{name: "members.remove", input: &dto.RemoveMemberRequest{}, workspace: true, permission: model.PermMembersManage, handle: team.Remove},

		{name: "invitations.create", input: &dto.CreateInvitationRequest{}, workspace: true, permission: model.PermMembersManage, handle: invitations.Create},
		{name: "invitations.list", workspace: true, permission: model.PermMembersManage, handle: invitations.List},
		{name: "invitations.revoke", input: &dto.IDRequest{}, workspace: true, permission: model.PermMembersManage, handle: invitations.Revoke},
		{name: "invitations.accept", input: &dto.AcceptInvitationRequest{}, handle: invitations.Accept},

		{name: "clients.list", workspace: true, handle: clients.List},
		{name: "clients.get", input: &dto.IDRequest{}, workspace: true, handle: clients.Get},
		{name: "clients.create", input: &dto.ClientRequest{}, workspace: true, permission: model.PermClientsManage, handle: clients.Create},
		{name: "clients.update", input: &dto.UpdateClientRequest{}, workspace: true, permission: model.PermClientsManage, handle: clients.Update},

		{name: "projects.list", input: &dto.ListProjectsRequest{}, workspace: true, handle: projects.List},
		{name: "projects.get", input: &dto.IDRequest{}, workspace: true, handle: projects.Get},
		{name: "projects.create", input: &dto.ProjectRequest{}, workspace: true, permission: model.PermProjectsManage, handle: projects.Create},
		{name: "projects.update", input: &dto.UpdateProjectRequest{}, workspace: true, permission: model.PermProjectsManage, handle: projects.Update},
		{name: "projects.archive", input: &dto.IDRequest{}, workspace: true, permission: model.PermProjectsManage, handle: projects.Archive},
		{name: "projects.unarchive", input: &dto.IDRequest{}, workspace: true, permission: model.PermProjectsManage, handle: projects.Unarchive},

		{name: "entries.start", input: &dto.StartEntryRequest{}, workspace: true, permission: model.PermEntriesWrite, handle: entries.Start},
		{name: "entries.stop", workspace: true, permission: model.PermEntriesWrite, handle: entries.Stop},
		{name: "entries.live", workspace: true, handle: entries.Live},
		{name: "entries.create", input: &dto.CreateEntryRequest{}, workspace: true, permission: model.PermEntriesWrite, handle: entries.Create},
		{name: "entries.update", input: &dto.UpdateEntryRequest{}, workspace: true, permission: model.PermEntriesWrite, handle: entries.Update},
		{name: "entries.delete", input: &dto.IDRequest{}, workspace: true, permission: model.PermEntriesWrite, handle: entries.Delete},
		{name: "entries.list", input: &dto.ListEntriesRequest{}, workspace: true, handle: entries.List},
		{name: "entries.summary", input: &dto.SummaryRequest{}, workspace: true, handle: entries.Summary},

		{name: "invoices.list", input: &dto.ListInvoicesRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.List},
		{name: "invoices.get", input: &dto.IDRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.Get},
		{name: "invoices.create", input: &dto.InvoiceRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.Create},
		{name: "invoices.update", input: &dto.UpdateInvoiceRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.Update},
		{name: "invoices.updateStatus", input: &dto.UpdateInvoiceStatusRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.UpdateStatus},
		{name: "invoices.fromEntries", input: &dto.FromEntriesRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.FromEntries},
		{name: "emails.sendInvoice", input: &dto.SendInvoiceRequest{}, workspace: true, permission: model.PermInvoicesManage, handle: invoices.Send},

		{name: "integrations.list", workspace: true, handle: integrations.List},
		{name: "integrations.disconnect", input: &dto.ProviderRequest{}, workspace: true, permission: model.PermIntegrationsManage, handle: integrations.Disconnect},
		{name: "integrations.repositories", input: &dto.ProviderRequest{}, workspace: true, permission: model.PermIntegrationsManage, handle: integrations.Repositories},
	}
}

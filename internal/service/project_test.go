package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/store"
)

var _ = Describe("ProjectService", func() {
	var (
		ctx      context.Context
		projects *mockProjectStore
		clients  *mockClientStore
		svc      service.ProjectService
	)

	BeforeEach(func() {
		ctx = context.Background()
		projects = &mockProjectStore{}
		clients = &mockClientStore{
			getByIDFn: func(_ context.Context, wsID, id int64) (*model.Client, error) {
				if wsID == 10 && id == 20 {
					return &model.Client{ID: 20, WorkspaceID: 10}, nil
				}
				return nil, store.ErrNotFound
			},
		}
		svc = service.NewProjectService(projects, clients)
	})

	It("defaults the color and lower-cases custom ones", func() {
		p, err := svc.Create(ctx, 10, service.ProjectParams{Name: "Website"})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Color).To(Equal(model.DefaultProjectColor))

		p, err = svc.Create(ctx, 10, service.ProjectParams{Name: "App", Color: "#FFAA00"})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Color).To(Equal("#ffaa00"))
	})

	It("rejects malformed colors and negative rates", func() {
		_, err := svc.Create(ctx, 10, service.ProjectParams{Name: "Website", Color: "red"})
		Expect(err).To(MatchError(service.ErrInvalidProject))

		rate := int64(-1)
		_, err = svc.Create(ctx, 10, service.ProjectParams{Name: "Website", RateCents: &rate})
		Expect(err).To(MatchError(service.ErrInvalidProject))
	})

	It("only links clients of the same workspace", func() {
		clientID := int64(20)
		p, err := svc.Create(ctx, 10, service.ProjectParams{Name: "Website", ClientID: &clientID})
		Expect(err).NotTo(HaveOccurred())
		Expect(*p.ClientID).To(Equal(int64(20)))

		_, err = svc.Create(ctx, 11, service.ProjectParams{Name: "Website", ClientID: &clientID})
		Expect(err).To(MatchError(service.ErrClientNotInWorkspace))
	})

	It("maps duplicate names", func() {
		projects.createFn = func(context.Context, *model.Project) error {
			return &store.ConstraintError{Err: store.ErrConflict, Constraint: "projects_workspace_id_name_key"}
		}
		_, err := svc.Create(ctx, 10, service.ProjectParams{Name: "Website"})
		Expect(err).To(MatchError(service.ErrProjectNameTaken))
	})

	It("archives and unarchives", func() {
		projects.archiveFn = func(_ context.Context, _, id int64, at *time.Time) (*model.Project, error) {
			return &model.Project{ID: id, ArchivedAt: at}, nil
		}

		p, err := svc.Archive(ctx, 10, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.IsArchived()).To(BeTrue())

		p, err = svc.Unarchive(ctx, 10, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.IsArchived()).To(BeFalse())
	})
})

var _ = Describe("ClientService", func() {
	var (
		ctx     context.Context
		clients *mockClientStore
		svc     service.ClientService
		ws      model.Workspace
	)

	BeforeEach(func() {
		ctx = context.Background()
		clients = &mockClientStore{}
		svc = service.NewClientService(clients)
		ws = model.Workspace{ID: 10, Currency: "GBP"}
	})

	It("inherits the workspace currency", func() {
		c, err := svc.Create(ctx, ws, service.ClientParams{Name: " Globex "})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Name).To(Equal("Globex"))
		Expect(c.Currency).To(Equal("GBP"))
		Expect(c.WorkspaceID).To(Equal(int64(10)))
	})

	It("treats a blank email as none", func() {
		blank := "  "
		c, err := svc.Create(ctx, ws, service.ClientParams{Name: "Globex", Email: &blank})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Email).To(BeNil())
	})

	It("maps duplicate names", func() {
		clients.createFn = func(context.Context, *model.Client) error {
			return &store.ConstraintError{Err: store.ErrConflict, Constraint: "clients_workspace_id_name_key"}
		}
		_, err := svc.Create(ctx, ws, service.ClientParams{Name: "Globex"})
		Expect(err).To(MatchError(service.ErrClientNameTaken))
	})

	It("requires a name", func() {
		_, err := svc.Create(ctx, ws, service.ClientParams{})
		Expect(err).To(MatchError(service.ErrInvalidClient))
	})
})

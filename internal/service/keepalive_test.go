package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

var _ = Describe("KeepaliveService", func() {
	var (
		ctx         context.Context
		database    *mockPinger
		cache       *mockPinger
		sessions    *mockSessionStore
		invitations *mockInvitationStore
		svc         service.KeepaliveService
	)

	BeforeEach(func() {
		ctx = context.Background()
		database = &mockPinger{}
		cache = &mockPinger{}
		sessions = &mockSessionStore{}
		invitations = &mockInvitationStore{}
		invSvc := service.NewInvitationService(invitations, &mockUserStore{}, &mockMemberStore{}, &mockTxRunner{}, &mockEmailService{}, "")
		svc = service.NewKeepaliveService(database, cache, sessions, invSvc)
	})

	It("reports both dependencies healthy", func() {
		report := svc.Ping(ctx)
		Expect(report.Healthy()).To(BeTrue())
		Expect(report.Database.Error).To(BeEmpty())
	})

	It("reports a failing cache without hiding the database", func() {
		cache.err = errors.New("connection refused")

		report := svc.Ping(ctx)
		Expect(report.Healthy()).To(BeFalse())
		Expect(report.Database.OK).To(BeTrue())
		Expect(report.Cache.OK).To(BeFalse())
		Expect(report.Cache.Error).To(Equal("connection refused"))
	})

	It("reports missing dependencies", func() {
		svc = service.NewKeepaliveService(nil, cache, sessions, nil)
		report := svc.Ping(ctx)
		Expect(report.Database.Error).To(Equal("not configured"))
	})

	It("cleans up sessions and invitations", func() {
		var expired bool
		invitations.expireOldFn = func(context.Context) error {
			expired = true
			return nil
		}
		report, err := svc.Cleanup(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.ExpiredSessionsDeleted).To(BeTrue())
		Expect(report.InvitationsExpired).To(BeTrue())
		Expect(expired).To(BeTrue())
	})

	It("stops cleanup at the first failure", func() {
		sessions.deleteExpiredFn = func(context.Context) error { return errors.New("db down") }
		report, err := svc.Cleanup(ctx)
		Expect(err).To(HaveOccurred())
		Expect(report.InvitationsExpired).To(BeFalse())
	})
})

var _ = Describe("PaymentService", func() {
	It("reports duplicates without failing", func() {
		seen := map[string]bool{}
		events := &mockPaymentEventStore{insertFn: func(_ context.Context, e *model.PaymentEvent) (bool, error) {
			if seen[e.ProviderEventID] {
				return false, nil
			}
			seen[e.ProviderEventID] = true
			return true, nil
		}}
		svc := service.NewPaymentService(events)

		inserted, err := svc.Record(context.Background(), "evt_1", "payment.succeeded", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(inserted).To(BeTrue())

		inserted, err = svc.Record(context.Background(), "evt_1", "payment.succeeded", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(inserted).To(BeFalse())
	})

	It("requires an id and a type", func() {
		svc := service.NewPaymentService(&mockPaymentEventStore{})
		_, err := svc.Record(context.Background(), " ", "payment.succeeded", nil)
		Expect(err).To(MatchError(service.ErrInvalidPaymentEvent))
	})
})

var _ = Describe("EmailService", func() {
	It("normalizes the recipient before queueing", func() {
		queue := &mockEmailQueue{}
		svc := service.NewEmailService(queue)
		Expect(svc.Enqueue(context.Background(), model.EmailMessage{To: " Ada@Example.com", Template: model.EmailTemplateWelcome})).To(Succeed())
		Expect(queue.enqueued).To(HaveLen(1))
		Expect(queue.enqueued[0].To).To(Equal("ada@example.com"))
	})

	It("rejects unknown templates", func() {
		svc := service.NewEmailService(&mockEmailQueue{})
		err := svc.Enqueue(context.Background(), model.EmailMessage{To: "ada@example.com", Template: "newsletter"})
		Expect(err).To(MatchError(service.ErrUnknownTemplate))
	})

	It("wraps queue failures", func() {
		svc := service.NewEmailService(&mockEmailQueue{err: errors.New("redis down")})
		err := svc.Enqueue(context.Background(), model.EmailMessage{To: "ada@example.com", Template: model.EmailTemplateWelcome})
		Expect(err).To(MatchError(ContainSubstring("redis down")))
	})
})

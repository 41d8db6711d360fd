package email_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/email"
	"hourline.app/server/internal/model"
)

var _ = Describe("Render", func() {
	It("renders an invitation", func() {
		out, err := email.Render(model.EmailTemplateInvitation, map[string]string{
			"workspace_name": "Acme Studio",
			"inviter_name":   "Ana",
			"role":           "admin",
			"invite_url":     "https://app.hourline.app/invite/abc",
			"expires_at":     "25 October 2026",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Subject).To(Equal("Ana invited you to Acme Studio on Hourline"))
		Expect(out.HTML).To(ContainSubstring(`href="https://app.hourline.app/invite/abc"`))
		Expect(out.HTML).To(ContainSubstring("Sent by Hourline"))
		Expect(out.Text).To(ContainSubstring("Accept the invitation: https://app.hourline.app/invite/abc"))
	})

	It("escapes variables in the HTML body only", func() {
		out, err := email.Render(model.EmailTemplateWelcome, map[string]string{
			"name":          "<b>Bo</b>",
			"dashboard_url": "https://app.hourline.app",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.HTML).To(ContainSubstring("Hi &lt;b&gt;Bo&lt;/b&gt;,"))
		Expect(out.Text).To(HavePrefix("Hi <b>Bo</b>,"))
	})

	It("treats the client name as optional on invoices", func() {
		out, err := email.Render(model.EmailTemplateInvoice, map[string]string{
			"workspace_name": "Acme Studio",
			"invoice_number": "INV-0007",
			"total":          "$323.99",
			"due_date":       "1 November 2026",
			"invoice_url":    "https://app.hourline.app/i/tok",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Subject).To(Equal("Invoice INV-0007 from Acme Studio"))
		Expect(out.Text).To(HavePrefix("Hi,\n"))
		Expect(out.Text).To(ContainSubstring("for $323.99, due 1 November 2026"))
	})

	It("fails on missing required variables", func() {
		_, err := email.Render(model.EmailTemplateInvoice, map[string]string{
			"workspace_name": "Acme Studio",
		})
		Expect(err).To(MatchError(email.ErrRender))
	})

	It("fails on unknown templates", func() {
		_, err := email.Render(model.EmailTemplate("newsletter"), nil)
		Expect(err).To(MatchError(email.ErrRender))
		Expect(err).To(MatchError(ContainSubstring("newsletter")))
	})
})

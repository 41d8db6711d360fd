package model

// EmailTemplate names a template the email worker knows how to render.
type EmailTemplate string

const (
	EmailTemplateInvitation EmailTemplate = "invitation"
	EmailTemplateInvoice    EmailTemplate = "invoice"
	EmailTemplateWelcome    EmailTemplate = "welcome"
)

func (t EmailTemplate) Valid() bool {
	switch t {
	case EmailTemplateInvitation, EmailTemplateInvoice, EmailTemplateWelcome:
		return true
	}
	return false
}

// EmailMessage is a queued email. Data carries the template variables.
type EmailMessage struct {
	To          string            `json:"to"`
	Template    EmailTemplate     `json:"template"`
	Data        map[string]string `json:"data"`
	WorkspaceID *int64            `json:"workspace_id,omitempty"`
}

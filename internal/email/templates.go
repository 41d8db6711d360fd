package email

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"hourline.app/server/internal/model"
)

// ErrRender marks failures that retrying will not fix: unknown templates and
// messages missing template variables.
var ErrRender = errors.New("rendering email")

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type emailTemplate struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

const layoutHTML = `<!doctype html>
<html>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #18181b; line-height: 1.5;">
<div style="max-width: 560px; margin: 0 auto; padding: 24px;">
{{template "body" .}}
<p style="color: #71717a; font-size: 12px; margin-top: 32px;">Sent by Hourline</p>
</div>
</body>
</html>`

var templates = map[model.EmailTemplate]emailTemplate{
	model.EmailTemplateInvitation: mustTemplate("invitation",
		`{{.inviter_name}} invited you to {{.workspace_name}} on Hourline`,
		`<p>{{.inviter_name}} invited you to join <strong>{{.workspace_name}}</strong> as {{.role}}.</p>
<p><a href="{{.invite_url}}" style="background: #18181b; color: #fff; padding: 10px 16px; border-radius: 6px; text-decoration: none;">Accept invitation</a></p>
<p style="color: #71717a;">This invitation expires on {{.expires_at}}.</p>`,
		`{{.inviter_name}} invited you to join {{.workspace_name}} as {{.role}}.

Accept the invitation: {{.invite_url}}

This invitation expires on {{.expires_at}}.
`),
	model.EmailTemplateInvoice: mustTemplate("invoice",
		`Invoice {{.invoice_number}} from {{.workspace_name}}`,
		`<p>{{with .client_name}}Hi {{.}},{{else}}Hi,{{end}}</p>
<p>{{.workspace_name}} sent you invoice <strong>{{.invoice_number}}</strong> for <strong>{{.total}}</strong>, due {{.due_date}}.</p>
<p><a href="{{.invoice_url}}" style="background: #18181b; color: #fff; padding: 10px 16px; border-radius: 6px; text-decoration: none;">View invoice</a></p>`,
		`{{with .client_name}}Hi {{.}},{{else}}Hi,{{end}}

{{.workspace_name}} sent you invoice {{.invoice_number}} for {{.total}}, due {{.due_date}}.

View the invoice: {{.invoice_url}}
`),
	model.EmailTemplateWelcome: mustTemplate("welcome",
		`Welcome to Hourline`,
		`<p>{{with .name}}Hi {{.}},{{else}}Hi,{{end}}</p>
<p>Your Hourline account is ready. Create a workspace, add a client and start the tracker when you start working.</p>
<p><a href="{{.dashboard_url}}">Open Hourline</a></p>`,
		`{{with .name}}Hi {{.}},{{else}}Hi,{{end}}

Your Hourline account is ready. Create a workspace, add a client and start the tracker when you start working.

Open Hourline: {{.dashboard_url}}
`),
}

func mustTemplate(name, subject, html, text string) emailTemplate {
	layout := htmltemplate.Must(htmltemplate.New(name).Option("missingkey=error").Parse(layoutHTML))
	return emailTemplate{
		subject: texttemplate.Must(texttemplate.New(name + "_subject").Option("missingkey=error").Parse(subject)),
		html:    htmltemplate.Must(layout.New("body").Parse(html)).Lookup(name),
		text:    texttemplate.Must(texttemplate.New(name + "_text").Option("missingkey=error").Parse(text)),
	}
}

// Render executes the subject, HTML and plain text forms of a template.
// Optional variables (client_name, name) may be missing from data.
func Render(name model.EmailTemplate, data map[string]string) (Rendered, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: unknown template %q", ErrRender, name)
	}

	vars := map[string]string{"client_name": "", "name": ""}
	for k, v := range data {
		vars[k] = v
	}

	var subject, html, text bytes.Buffer
	if err := tmpl.subject.Execute(&subject, vars); err != nil {
		return Rendered{}, fmt.Errorf("%w: %s subject: %v", ErrRender, name, err)
	}
	if err := tmpl.html.Execute(&html, vars); err != nil {
		return Rendered{}, fmt.Errorf("%w: %s html: %v", ErrRender, name, err)
	}
	if err := tmpl.text.Execute(&text, vars); err != nil {
		return Rendered{}, fmt.Errorf("%w: %s text: %v", ErrRender, name, err)
	}

	return Rendered{
		Subject: strings.TrimSpace(subject.String()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

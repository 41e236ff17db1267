package mailer

import (
	"strings"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text and/or HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // one of templates.Names
	Data     map[string]any `json:"data,omitempty"`
}

func (j EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return errs.Validation(errs.CodeValidationFailed, "email recipient is required")
	}
	if j.Template != "" {
		if !mailtpl.Known(j.Template) {
			return errs.Validation(errs.CodeValidationFailed, "unknown email template: "+j.Template)
		}
		return nil
	}
	if strings.TrimSpace(j.Subject) == "" || (j.Text == "" && j.HTML == "") {
		return errs.Validation(errs.CodeValidationFailed, "either template or subject with text/html is required")
	}
	return nil
}

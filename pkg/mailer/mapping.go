package mailer

import (
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

// EnsureRecipient fills Email/RecipientEmail in Data from To when missing.
func EnsureRecipient(job *EmailJob) {
	if job.Template == "" {
		return
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for _, k := range []string{"Email", "RecipientEmail"} {
		if v, ok := job.Data[k]; !ok || strings.TrimSpace(fmt.Sprint(v)) == "" {
			job.Data[k] = job.To
		}
	}
	if _, ok := job.Data["Type"]; !ok {
		job.Data["Type"] = job.Template
	}
}

// ApplyBrand adds brand fields the caller did not set.
func ApplyBrand(job *EmailJob, b mailtpl.Brand) {
	if job.Template == "" {
		return
	}
	defaults := mailtpl.ToMap(mailtpl.NewBaseEmailData(b, job.Template, "", job.To))
	for k, v := range defaults {
		if _, ok := job.Data[k]; !ok {
			job.Data[k] = v
		}
	}
}

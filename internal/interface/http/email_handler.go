package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application"
	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

type EmailHandler struct {
	Mail   application.Mailer
	Logger *logrus.Logger
}

func NewEmailHandler(mail application.Mailer, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{Mail: mail, Logger: logger}
}

// Send POST /api/email/send (admin). The job is queued; delivery failures
// are logged by the mailer.
func (h *EmailHandler) Send(c *gin.Context) {
	var req dto.SendEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	job := mailer.EmailJob{To: req.To}
	if req.Template != "" {
		job.Template = req.Template
		job.Data = req.Data
	} else {
		job.Subject = req.Subject
		job.Text = req.Text
		job.HTML = req.HTML
	}
	if err := job.Validate(); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Mail.SendAsync(c.Request.Context(), job)
	response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": true}, "email enqueued", nil)
}

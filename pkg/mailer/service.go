package mailer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

// Publisher queues a job for cmd/email_worker. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type Options struct {
	Enabled  bool
	Brand    mailtpl.Brand
	Location *time.Location
	Timeout  time.Duration // per async send, default 15s
}

// Service renders and delivers email. Send blocks until the provider answers;
// SendAsync hands the job to the queue (or a goroutine) and returns at once.
type Service struct {
	sender Sender
	pub    Publisher
	opts   Options
	log    *logrus.Logger
}

// NewService wires a sender and an optional publisher. pub may be nil.
func NewService(sender Sender, pub Publisher, opts Options, log *logrus.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{sender: sender, pub: pub, opts: opts, log: helpers.OrNop(log)}
}

func (s *Service) Enabled() bool { return s.opts.Enabled && s.sender != nil }

// Render resolves the job into subject, text and html.
func (s *Service) Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	EnsureRecipient(&job)
	ApplyBrand(&job, s.opts.Brand)
	LocalizeTimes(job.Data, s.opts.Location)
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}

// Send delivers the job synchronously.
func (s *Service) Send(ctx context.Context, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if !s.Enabled() {
		metrics.EmailsDispatchedTotal.WithLabelValues("disabled", "skipped").Inc()
		s.log.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("mail sending disabled; email dropped")
		return nil
	}
	subject, text, html, err := s.Render(job)
	if err != nil {
		metrics.EmailsDispatchedTotal.WithLabelValues("sync", "error").Inc()
		return errs.MailSendFailed(job.To, err)
	}
	if err := s.sender.Send(ctx, job.To, subject, text, html); err != nil {
		metrics.EmailsDispatchedTotal.WithLabelValues("sync", "error").Inc()
		return errs.MailSendFailed(job.To, err)
	}
	metrics.EmailsDispatchedTotal.WithLabelValues("sync", "ok").Inc()
	return nil
}

// SendAsync returns immediately. The channel receives exactly one value (nil
// on success) and is then closed; callers may ignore it. Failures are logged.
func (s *Service) SendAsync(ctx context.Context, job EmailJob) <-chan error {
	done := make(chan error, 1)
	if err := job.Validate(); err != nil {
		done <- err
		close(done)
		return done
	}
	// the request context ends with the response; the send must outlive it
	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		err := s.dispatch(bg, job)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("async email failed")
		}
		done <- err
	}()
	return done
}

func (s *Service) dispatch(ctx context.Context, job EmailJob) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	if s.pub != nil && s.opts.Enabled {
		if err := s.pub.PublishJSON(ctx, job); err != nil {
			metrics.EmailsDispatchedTotal.WithLabelValues("queue", "error").Inc()
			return errs.MailSendFailed(job.To, err)
		}
		metrics.EmailsDispatchedTotal.WithLabelValues("queue", "ok").Inc()
		return nil
	}
	return s.Send(ctx, job)
}

package push

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type messagingClient interface {
	Send(ctx context.Context, m *messaging.Message) (string, error)
}

// FCMSender sends one message per device token.
type FCMSender struct {
	client  messagingClient
	timeout time.Duration
	log     *logrus.Logger
}

// NewFCMSender builds a Firebase app from a service account file, or from
// Application Default Credentials when credsPath is empty.
func NewFCMSender(ctx context.Context, projectID, credsPath string, log *logrus.Logger) (*FCMSender, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FCMSender{client: client, timeout: 10 * time.Second, log: helpers.OrNop(log)}, nil
}

func (s *FCMSender) Send(ctx context.Context, m Message) Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	id, err := s.client.Send(ctx, &messaging.Message{
		Token:        m.Token,
		Notification: &messaging.Notification{Title: m.Title, Body: m.Body},
		Data:         m.Data,
	})
	if err != nil {
		res := Result{Token: m.Token, Err: errs.PushSendFailed(m.Token, err), Unregistered: messaging.IsUnregistered(err)}
		s.log.WithError(err).WithField("unregistered", res.Unregistered).Warn("fcm send failed")
		return res
	}
	return Result{Token: m.Token, MessageID: id}
}

func (s *FCMSender) SendAsync(ctx context.Context, m Message) <-chan Result {
	return SendAsync(ctx, s, m)
}

var _ Sender = (*FCMSender)(nil)

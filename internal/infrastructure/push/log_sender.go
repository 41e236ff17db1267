package push

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

// LogSender stands in for FCM in local runs; every send succeeds.
type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender { return &LogSender{log: helpers.OrNop(log)} }

func (s *LogSender) Send(_ context.Context, m Message) Result {
	id := "local-" + uuid.NewString()
	s.log.WithFields(logrus.Fields{"token": m.Token, "title": m.Title, "message_id": id}).Info("push (log only)")
	return Result{Token: m.Token, MessageID: id}
}

var _ Sender = (*LogSender)(nil)

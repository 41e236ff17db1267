package application

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/push"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

type NotificationOptions struct {
	// Async delivers pushes in the background; Notify returns before the
	// provider answers and the delivery outcome is saved later.
	Async bool
	Brand mailtpl.Brand
}

type NotificationService struct {
	notifications repository.NotificationRepository
	devices       repository.DeviceTokenRepository
	users         repository.UserRepository
	sender        push.Sender
	mail          Mailer
	opts          NotificationOptions
	log           *logrus.Logger
}

// NewNotificationService wires in-app and push notifications. mail may be nil.
func NewNotificationService(notifications repository.NotificationRepository, devices repository.DeviceTokenRepository, users repository.UserRepository, sender push.Sender, mail Mailer, opts NotificationOptions, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		devices:       devices,
		users:         users,
		sender:        sender,
		mail:          mail,
		opts:          opts,
		log:           helpers.OrNop(log),
	}
}

// RegisterDevice upserts by token; a token seen before moves to the caller.
func (s *NotificationService) RegisterDevice(ctx context.Context, actor Actor, req dto.RegisterDeviceRequest) (*entity.DeviceToken, error) {
	platform, err := entity.ParseDevicePlatform(req.Platform)
	if err != nil {
		return nil, err
	}
	token := strings.TrimSpace(req.Token)
	d, err := s.devices.FindByToken(ctx, token)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		d = &entity.DeviceToken{Token: token}
	case err != nil:
		return nil, repoErr(err)
	}
	d.UserID = actor.UserID
	d.Platform = platform
	saved, err := s.devices.Save(ctx, d)
	if err != nil {
		return nil, repoErr(err)
	}
	return saved, nil
}

// UnregisterDevice is idempotent; tokens of other users are left alone.
func (s *NotificationService) UnregisterDevice(ctx context.Context, actor Actor, token string) error {
	d, err := s.devices.FindByToken(ctx, strings.TrimSpace(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return repoErr(err)
	}
	if d.UserID != actor.UserID {
		return nil
	}
	return repoErr(s.devices.DeleteByID(ctx, d.ID))
}

// Notify stores the notification and pushes it to every device of the user.
func (s *NotificationService) Notify(ctx context.Context, userID, title, body string, typ entity.NotificationType) (*entity.Notification, error) {
	if typ == "" {
		typ = entity.NotificationGeneral
	}
	n := &entity.Notification{UserID: userID, Type: typ, Title: title, Body: body}
	if _, err := s.notifications.Save(ctx, n); err != nil {
		return nil, repoErr(err)
	}
	devices, err := s.devices.FindByUserID(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("load devices failed")
		return n, nil
	}
	if len(devices) == 0 || s.sender == nil {
		metrics.NotificationsSentTotal.WithLabelValues("skipped").Inc()
		return n, nil
	}
	if s.opts.Async {
		results := make([]<-chan push.Result, 0, len(devices))
		for _, d := range devices {
			results = append(results, push.SendAsync(ctx, s.sender, s.message(n, d)))
		}
		go s.record(context.WithoutCancel(ctx), n.ID, func(yield func(push.Result) bool) {
			for _, ch := range results {
				if !yield(<-ch) {
					return
				}
			}
		})
		return n, nil
	}
	outcome := s.record(ctx, n.ID, func(yield func(push.Result) bool) {
		for _, d := range devices {
			if !yield(s.sender.Send(ctx, s.message(n, d))) {
				return
			}
		}
	})
	n.RecordDelivery(outcome.ProviderMessageID, outcome.DeliveryError)
	return n, nil
}

func (s *NotificationService) message(n *entity.Notification, d *entity.DeviceToken) push.Message {
	return push.Message{
		Token: d.Token,
		Title: n.Title,
		Body:  n.Body,
		Data:  map[string]string{"notification_id": n.ID, "type": string(n.Type)},
	}
}

// record folds the push results into one delivery outcome, prunes dead tokens
// and stores the outcome for notification id. The read flag is left alone.
func (s *NotificationService) record(ctx context.Context, id string, results iter.Seq[push.Result]) entity.Notification {
	var d entity.Notification
	for r := range results {
		if r.Err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("failed").Inc()
			d.RecordDelivery("", r.Err.Error())
			if r.Unregistered {
				if err := s.devices.DeleteByToken(ctx, r.Token); err != nil {
					s.log.WithError(err).Warn("prune unregistered device failed")
				}
			}
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues("sent").Inc()
		d.RecordDelivery(r.MessageID, "")
	}
	if err := s.notifications.RecordDelivery(ctx, id, d.ProviderMessageID, d.DeliveryError); err != nil {
		s.log.WithError(err).WithField("notification_id", id).Warn("save delivery result failed")
	}
	return d
}

// Send is the admin entry point; it can also mirror the notification by email.
func (s *NotificationService) Send(ctx context.Context, req dto.SendNotificationRequest) (*entity.Notification, error) {
	u, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fromRepo(err, errs.UserNotFound, req.UserID)
	}
	typ := entity.NotificationGeneral
	if req.Type != "" {
		typ = entity.NotificationType(strings.ToUpper(req.Type))
	}
	n, err := s.Notify(ctx, u.ID, req.Title, req.Body, typ)
	if err != nil {
		return nil, err
	}
	if req.Email && s.mail != nil {
		s.mail.SendAsync(ctx, mailer.EmailJob{
			To:       u.Email.String(),
			Template: mailtpl.Notification,
			Data:     mailtpl.NewNotificationData(s.opts.Brand, u.FullName(), u.Email.String(), req.Title, req.Body),
		})
	}
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, actor Actor, p repository.Page) ([]*entity.Notification, int64, error) {
	ns, total, err := s.notifications.FindByUserID(ctx, actor.UserID, p.Normalize())
	if err != nil {
		return nil, 0, repoErr(err)
	}
	return ns, total, nil
}

func (s *NotificationService) own(ctx context.Context, actor Actor, id string) (*entity.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, errs.NotificationNotFound, id)
	}
	if n.UserID != actor.UserID {
		return nil, errs.NotificationNotFound(id)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id string) (*entity.Notification, error) {
	n, err := s.own(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	n.MarkRead()
	saved, err := s.notifications.Save(ctx, n)
	if err != nil {
		return nil, fromRepo(err, errs.NotificationNotFound, id)
	}
	return saved, nil
}

func (s *NotificationService) Delete(ctx context.Context, actor Actor, id string) error {
	n, err := s.own(ctx, actor, id)
	if err != nil {
		return err
	}
	return repoErr(s.notifications.DeleteByID(ctx, n.ID))
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	n, err := s.notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, repoErr(err)
	}
	return n, nil
}

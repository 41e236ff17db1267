package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/config"
	"github.com/oksasatya/estate-listing-api/internal/container"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
)

const prefetch = 16

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, prefetch)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	// the worker sends directly; publishing again would loop the job
	mail, closeMail := container.NewMailService(cfg, container.Brand(cfg), false, logger)
	defer closeMail()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, mail, msg, logger)
		}
	}()

	helpers.LogInfo(logger, "email worker listening", logrus.Fields{"queue": cfg.RabbitMQEmailQueue, "prefetch": prefetch})
	<-ctx.Done()
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle acks sent jobs, drops malformed ones and requeues provider failures.
func handle(ctx context.Context, mail *mailer.Service, msg amqp.Delivery, log *logrus.Logger) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		helpers.LogError(log, "bad message", err, logrus.Fields{"delivery_tag": msg.DeliveryTag})
		_ = msg.Nack(false, false)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	err := mail.Send(sendCtx, job)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errs.IsKind(err, errs.KindValidation):
		log.WithError(err).WithField("template", job.Template).Warn("dropping invalid email job")
		_ = msg.Nack(false, false)
	default:
		log.WithError(err).WithField("to", job.To).Warn("send failed; requeued")
		_ = msg.Nack(false, true)
	}
}

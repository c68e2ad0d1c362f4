package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oceantrail/divelog-api/config"
	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	pginfra "github.com/oceantrail/divelog-api/internal/infrastructure/postgres"
	"github.com/oceantrail/divelog-api/pkg/helpers"
	"github.com/oceantrail/divelog-api/pkg/mailer"
)

// The worker drains the notification queue: every job becomes a persisted
// in-app notification, and high-priority jobs also go out by email.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	notifications := application.NewNotificationService(pginfra.NewNotificationRepository(pool), logger)

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("MAIL_SEND_ENABLED=true but Mailgun not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Info("MAIL_SEND_ENABLED=false; high-priority jobs will not send email")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQNotificationQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.NotificationJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.Warnf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := handleJob(c, notifications, mg, job); err != nil {
				cancel()
				logger.Errorf("handle %s for user %s: %v", job.Type, job.UserID, err)
				// Requeue once; broker redelivery flag tells us if this already failed before.
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("notification worker consuming %q", cfg.RabbitMQNotificationQueue)
	<-stop
	logger.Info("shutting down notification worker")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
	}
}

func handleJob(ctx context.Context, notifications *application.NotificationService, mg *mailer.Mailgun, job mailer.NotificationJob) error {
	priority := entity.NotificationPriority(job.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}

	if _, err := notifications.Deliver(ctx, entity.NewNotificationInput{
		UserID:      job.UserID,
		Type:        entity.NotificationType(job.Type),
		Title:       job.Title,
		Message:     job.Message,
		Priority:    priority,
		ReferenceID: job.ReferenceID,
	}); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	if mg != nil && priority == entity.PriorityHigh && job.Email != "" {
		text := job.Message
		html := fmt.Sprintf("<h3>%s</h3><p>%s</p>", job.Title, job.Message)
		if err := mg.Send(ctx, job.Email, job.Title, text, html); err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	}
	return nil
}

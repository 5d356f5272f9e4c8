package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"teamup/models"
	"teamup/repository"
)

// EmailMessage is one outbound email for the channel chain.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Channel is one way of delivering an email. Channels are tried in priority
// order; the dispatcher stops at the first success.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg *EmailMessage) error
}

// SMTPChannel delivers through a configured SMTP relay.
type SMTPChannel struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

func (s *SMTPChannel) Name() string { return "smtp" }

func (s *SMTPChannel) Send(ctx context.Context, msg *EmailMessage) error {
	if err := checkmail.ValidateFormat(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.FromName, s.FromEmail))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)

	// gomail has no context support, so the dial runs in its own goroutine
	// and the deadline is enforced here.
	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// APIChannel delivers through a transactional email HTTP API.
type APIChannel struct {
	Client    *resty.Client
	URL       string
	APIKey    string
	FromName  string
	FromEmail string
}

func (a *APIChannel) Name() string { return "mail-api" }

func (a *APIChannel) Send(ctx context.Context, msg *EmailMessage) error {
	if err := checkmail.ValidateFormat(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	resp, err := a.Client.R().
		SetContext(ctx).
		SetAuthToken(a.APIKey).
		SetBody(map[string]interface{}{
			"from_name":  a.FromName,
			"from_email": a.FromEmail,
			"to":         msg.To,
			"subject":    msg.Subject,
			"html":       msg.HTML,
		}).
		Post(a.URL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail api returned %s", resp.Status())
	}
	return nil
}

// LogChannel is the lowest-priority channel: it writes the message to the log
// and reports success, so a deployment with no mail configuration still
// completes every dispatch.
type LogChannel struct {
	Logger *logrus.Entry
}

func (l *LogChannel) Name() string { return "log" }

func (l *LogChannel) Send(_ context.Context, msg *EmailMessage) error {
	l.Logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email delivery skipped, logging only")
	return nil
}

// Job is one fire-and-forget notification: an optional email plus an optional
// in-app record. Either half failing is logged and swallowed.
type Job struct {
	Email *EmailMessage
	InApp *models.Notification
}

// Dispatcher fans workflow events out to email and in-app channels. Its
// outcome never reaches the handler that triggered it: Dispatch enqueues and
// returns, and delivery errors stop at the log and the error reporter.
type Dispatcher struct {
	channels      []Channel
	notifications repository.NotificationRepository
	logger        *logrus.Entry
	appURL        string
	jobs          chan Job
	timeout       time.Duration
}

// NewDispatcher wires the ordered channel chain. queueSize bounds the pending
// job buffer; timeout caps each delivery attempt.
func NewDispatcher(channels []Channel, notifications repository.NotificationRepository, logger *logrus.Entry, appURL string, queueSize int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		channels:      channels,
		notifications: notifications,
		logger:        logger,
		appURL:        appURL,
		jobs:          make(chan Job, queueSize),
		timeout:       timeout,
	}
}

// Jobs exposes the pending queue to the notify worker.
func (d *Dispatcher) Jobs() <-chan Job { return d.jobs }

// Dispatch hands a job to the background worker without blocking. When the
// queue is full the job is delivered from its own goroutine instead of being
// dropped.
func (d *Dispatcher) Dispatch(job Job) {
	select {
	case d.jobs <- job:
	default:
		go d.Deliver(context.Background(), job)
	}
}

// Deliver runs one job to completion under the dispatch timeout. All failures
// are logged and captured, never returned.
func (d *Dispatcher) Deliver(ctx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if job.InApp != nil {
		if err := d.notifications.Create(ctx, job.InApp); err != nil {
			d.logger.WithError(err).WithField("user_id", job.InApp.UserID).
				Error("failed to persist in-app notification")
			sentry.CaptureException(err)
		}
	}

	if job.Email != nil {
		d.sendEmail(ctx, job.Email)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, msg *EmailMessage) {
	for _, ch := range d.channels {
		err := ch.Send(ctx, msg)
		if err == nil {
			d.logger.WithFields(logrus.Fields{
				"channel": ch.Name(),
				"to":      msg.To,
			}).Debug("email delivered")
			return
		}
		d.logger.WithError(err).WithFields(logrus.Fields{
			"channel": ch.Name(),
			"to":      msg.To,
		}).Warn("email channel failed, trying next")
	}

	err := fmt.Errorf("all notification channels failed for %s", msg.To)
	d.logger.WithField("to", msg.To).Error(err.Error())
	sentry.CaptureException(err)
}

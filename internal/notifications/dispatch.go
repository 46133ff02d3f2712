package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"taskflowpro/internal/models"
	"taskflowpro/internal/observability"
)

// NotificationStore persists notification records (the database channel).
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// RecipientDirectory resolves recipient IDs to user records for the mail
// channel.
type RecipientDirectory interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Mailer sends the email channel. Implementations must be safe to call when
// unconfigured (no-op).
type Mailer interface {
	IsConfigured() bool
	Send(to, subject, body string) error
}

// Dispatcher interprets Delivery values produced by the event builders.
// Delivery is best-effort and fire-and-forget from the caller's point of
// view: failures on one channel are logged and never abort the others.
type Dispatcher struct {
	store    NotificationStore
	users    RecipientDirectory
	notifier *Notifier
	mailer   Mailer
	logger   *slog.Logger
}

// NewDispatcher returns a Dispatcher over the given channel backends. Any of
// notifier/mailer may be nil; the corresponding channel is then skipped.
func NewDispatcher(store NotificationStore, users RecipientDirectory, notifier *Notifier, mailer Mailer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:    store,
		users:    users,
		notifier: notifier,
		mailer:   mailer,
		logger:   logger,
	}
}

// envelope is the wire shape pushed over the broadcast channel and stored in
// notification records.
type envelope struct {
	Event     Event          `json:"event"`
	Subject   string         `json:"subject"`
	Payload   map[string]any `json:"payload"`
	Lines     []string       `json:"lines"`
	ActionURL string         `json:"action_url"`
}

// Dispatch delivers d to every recipient over every requested channel.
func (dp *Dispatcher) Dispatch(ctx context.Context, d Delivery) {
	if len(d.Recipients) == 0 {
		return
	}

	raw, err := json.Marshal(envelope{
		Event:     d.Event,
		Subject:   d.Subject,
		Payload:   d.Payload,
		Lines:     d.Lines,
		ActionURL: d.ActionURL,
	})
	if err != nil {
		dp.logger.ErrorContext(ctx, "failed to encode notification envelope",
			"event", d.Event, "err", err)
		return
	}
	payload := string(raw)

	for _, userID := range d.Recipients {
		if d.HasChannel(ChannelDatabase) && dp.store != nil {
			record := &models.Notification{
				UserID:  userID,
				Type:    string(d.Event),
				Payload: payload,
			}
			if err := dp.store.Create(ctx, record); err != nil {
				dp.logger.ErrorContext(ctx, "failed to persist notification",
					"event", d.Event, "user_id", userID, "err", err)
			} else {
				observability.NotificationsDelivered.WithLabelValues(string(d.Event), string(ChannelDatabase)).Inc()
			}
		}

		if d.HasChannel(ChannelBroadcast) && dp.notifier != nil {
			if err := dp.notifier.PublishUser(ctx, userID, payload); err != nil {
				dp.logger.WarnContext(ctx, "failed to publish notification",
					"event", d.Event, "user_id", userID, "err", err)
			} else {
				observability.NotificationsDelivered.WithLabelValues(string(d.Event), string(ChannelBroadcast)).Inc()
			}
		}

		if d.HasChannel(ChannelMail) && dp.mailer != nil && dp.mailer.IsConfigured() {
			dp.sendMail(ctx, userID, d)
		}
	}
}

func (dp *Dispatcher) sendMail(ctx context.Context, userID uint, d Delivery) {
	if dp.users == nil {
		return
	}
	user, err := dp.users.GetByID(ctx, userID)
	if err != nil || user == nil || user.Email == "" {
		dp.logger.WarnContext(ctx, "skipping mail notification: recipient unresolved",
			"event", d.Event, "user_id", userID, "err", err)
		return
	}

	to := user.Email
	subject := d.Subject
	body := renderMailBody(d)

	// Mail delivery happens off the request path; failures are logged only.
	go func() {
		if err := dp.mailer.Send(to, subject, body); err != nil {
			dp.logger.Warn("failed to send notification mail",
				"event", d.Event, "user_id", userID, "err", err)
			return
		}
		observability.NotificationsDelivered.WithLabelValues(string(d.Event), string(ChannelMail)).Inc()
	}()
}

func renderMailBody(d Delivery) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, line := range d.Lines {
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}
	if d.ActionURL != "" {
		b.WriteString(`<p><a href="`)
		b.WriteString(d.ActionURL)
		b.WriteString(`">View in TaskFlowPro</a></p>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}

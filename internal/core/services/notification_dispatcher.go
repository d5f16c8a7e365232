package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// NotificationDispatcher fans a notification out over two independent
// channels: an outbound email and a push to every live connection registered
// for the recipient. Notify returns immediately; delivery runs in background
// goroutines, failures are logged and never propagated, and no ordering
// holds between the two channels.
type NotificationDispatcher struct {
	email  ports.EmailSender
	pusher ports.Pusher
	logger *slog.Logger
	wg     sync.WaitGroup
}

var _ ports.Notifier = (*NotificationDispatcher)(nil)

// NewNotificationDispatcher creates a new dispatcher.
func NewNotificationDispatcher(
	email ports.EmailSender,
	pusher ports.Pusher,
	logger *slog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		email:  email,
		pusher: pusher,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Notify dispatches one notification. It never blocks on delivery and never
// returns an error: notification is a side effect, not part of the ticket
// mutation.
func (d *NotificationDispatcher) Notify(n domain.Notification) {
	d.wg.Add(2)

	go func() {
		defer d.wg.Done()
		d.sendEmail(n)
	}()

	go func() {
		defer d.wg.Done()
		d.pusher.SendToUser(n.RecipientID, n.Message)
	}()
}

// sendEmail attempts the async-message channel. A failed send is logged and
// dropped: no retry, no acknowledgement.
func (d *NotificationDispatcher) sendEmail(n domain.Notification) {
	// Background context: the originating request may already be done.
	ctx := context.Background()

	if err := d.email.Send(ctx, n.RecipientEmail, "Ticket Notification", n.Message); err != nil {
		d.logger.Error("email delivery failed",
			"recipient", n.RecipientEmail,
			"error", err,
		)
		return
	}

	d.logger.Info("notification email sent",
		"recipient", n.RecipientEmail,
	)
}

// Shutdown waits for in-flight deliveries to finish.
func (d *NotificationDispatcher) Shutdown() {
	d.wg.Wait()
}

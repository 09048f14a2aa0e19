package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/email"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/messaging"
)

// BrokerNotifier hands the due reminder to the external push transport via
// the message broker.
type BrokerNotifier struct {
	broker messaging.Broker
}

func NewBrokerNotifier(broker messaging.Broker) *BrokerNotifier {
	return &BrokerNotifier{broker: broker}
}

func (n *BrokerNotifier) Notify(ctx context.Context, task *model.ReminderTask) error {
	if err := n.broker.Publish(ctx, messaging.ChannelReminders, task); err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}
	return nil
}

// EmailNotifier sends the reminder by mail when the task carries a
// recipient address.
type EmailNotifier struct {
	mailer email.Mailer
}

func NewEmailNotifier(mailer email.Mailer) *EmailNotifier {
	return &EmailNotifier{mailer: mailer}
}

func (n *EmailNotifier) Notify(ctx context.Context, task *model.ReminderTask) error {
	if task.Recipient == "" {
		// Nothing to address the mail to; push transport covers this task.
		return nil
	}

	subject := fmt.Sprintf("Upcoming appointment at %s", task.SalonName)
	body := fmt.Sprintf("Your appointment at %s starts at %s.",
		task.SalonName, task.StartTime.Format("15:04, Mon 2 Jan"))
	if len(task.Services) > 0 {
		body += fmt.Sprintf(" Services: %s.", strings.Join(task.Services, ", "))
	}
	return n.mailer.Send(ctx, task.Recipient, subject, body)
}

// MultiNotifier fans a reminder out to several transports, returning the
// first error after trying all of them.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, task *model.ReminderTask) error {
	var firstErr error
	for _, n := range m {
		if err := n.Notify(ctx, task); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

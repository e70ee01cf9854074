// Package notify delivers best-effort notifications for application lifecycle events.
package notify

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Template names for lifecycle events.
const (
	TemplateApplicationSubmitted = "applicationSubmitted" // to the applicant
	TemplateNewApplication       = "newApplication"       // to the employer
	TemplateApplicationUpdate    = "applicationUpdate"    // to the applicant on status change
)

// Notification is a single templated message to a recipient.
type Notification struct {
	Recipient string         // recipient email address
	Template  string         // one of the Template constants
	Payload   map[string]any // template variables
}

// Dispatcher sends templated notifications. Delivery is best-effort and
// at-most-once: failures are the dispatcher's problem to log, never the
// caller's to handle.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// LogDispatcher writes rendered notifications to the process log. It stands
// in for a real mail sender; the delivery contract is the same.
type LogDispatcher struct{}

// Dispatch implements Dispatcher.
func (LogDispatcher) Dispatch(_ context.Context, n Notification) error {
	log.Printf("[notify] to=%s template=%s payload=%v", n.Recipient, n.Template, n.Payload)
	return nil
}

// Send delivers a batch of notifications concurrently without blocking the
// caller. Failures are logged and swallowed; there are no retries.
func Send(dispatcher Dispatcher, notifications ...Notification) {
	if dispatcher == nil || len(notifications) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		for _, n := range notifications {
			g.Go(func() error {
				if err := dispatcher.Dispatch(ctx, n); err != nil {
					log.Printf("[notify] failed to send %s to %s: %v", n.Template, n.Recipient, err)
				}
				return nil // delivery failures never cancel the batch
			})
		}
		_ = g.Wait()
	}()
}

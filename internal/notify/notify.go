// Package notify sends outbound notifications: the welcome email to a
// freshly captured lead and the internal alert to the sales team. All
// sends are fire-and-forget from the caller's perspective; failures are
// logged, never surfaced into the conversation.
package notify

import (
	"context"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// Notifier delivers lead notifications.
type Notifier interface {
	// SendWelcome emails the lead after their email address is first
	// captured.
	SendWelcome(ctx context.Context, lead *model.Lead) error

	// NotifySalesTeam alerts the internal team about a new or updated
	// lead.
	NotifySalesTeam(ctx context.Context, lead *model.Lead) error
}

// Package crm persists captured leads. The default implementation is a
// local SQLite database; a noop sink is available for tests and for
// running the agent without persistence.
package crm

import (
	"context"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// CRM is the lead sink interface.
type CRM interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	UpdateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, limit, offset int) ([]model.Lead, int, error)
	AddNote(ctx context.Context, note *model.LeadNote) error
}

// Noop discards every write and returns empty reads.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) CreateLead(context.Context, *model.Lead) error { return nil }
func (n *Noop) UpdateLead(context.Context, *model.Lead) error { return nil }
func (n *Noop) GetLead(context.Context, string) (*model.Lead, error) {
	return nil, ErrLeadNotFound
}
func (n *Noop) ListLeads(context.Context, int, int) ([]model.Lead, int, error) {
	return nil, 0, nil
}
func (n *Noop) AddNote(context.Context, *model.LeadNote) error { return nil }

package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

// LogNotifier logs notifications instead of sending them. It is the
// default when no SMTP relay is configured.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLog(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) SendWelcome(_ context.Context, lead *model.Lead) error {
	n.logger.Info("welcome email (log only)",
		zap.String("lead_id", lead.ID),
		zap.String("email", lead.Email),
	)
	return nil
}

func (n *LogNotifier) NotifySalesTeam(_ context.Context, lead *model.Lead) error {
	n.logger.Info("sales team notification (log only)",
		zap.String("lead_id", lead.ID),
		zap.String("session_id", lead.SessionID),
		zap.Float64("qualification_score", lead.QualificationScore),
	)
	return nil
}

package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func captureSender(n *SMTPNotifier, sink *[]sentMail) {
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*sink = append(*sink, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
}

func TestSendWelcome(t *testing.T) {
	n := NewSMTP(SMTPConfig{Host: "mail.test", Port: 587, From: "hola@qorax.ai"})
	var sent []sentMail
	captureSender(n, &sent)

	lead := &model.Lead{ID: "l1", Name: "Ana", Email: "ana@cafe.mx"}
	require.NoError(t, n.SendWelcome(context.Background(), lead))

	require.Len(t, sent, 1)
	assert.Equal(t, "mail.test:587", sent[0].addr)
	assert.Equal(t, []string{"ana@cafe.mx"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Hola Ana")
}

func TestSendWelcomeSkipsWithoutEmail(t *testing.T) {
	n := NewSMTP(SMTPConfig{Host: "mail.test", Port: 587})
	var sent []sentMail
	captureSender(n, &sent)

	require.NoError(t, n.SendWelcome(context.Background(), &model.Lead{ID: "l1"}))
	assert.Empty(t, sent)
}

func TestNotifySalesTeam(t *testing.T) {
	n := NewSMTP(SMTPConfig{
		Host:      "mail.test",
		Port:      587,
		From:      "hola@qorax.ai",
		SalesTeam: []string{"ventas@qorax.ai"},
	})
	var sent []sentMail
	captureSender(n, &sent)

	lead := &model.Lead{ID: "l1", SessionID: "s1", Name: "Ana", QualificationScore: 70}
	require.NoError(t, n.NotifySalesTeam(context.Background(), lead))

	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ventas@qorax.ai"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Nuevo lead")
}

func TestNotifySalesTeamSkipsWithoutRecipients(t *testing.T) {
	n := NewSMTP(SMTPConfig{Host: "mail.test", Port: 587})
	var sent []sentMail
	captureSender(n, &sent)

	require.NoError(t, n.NotifySalesTeam(context.Background(), &model.Lead{ID: "l1"}))
	assert.Empty(t, sent)
}

func TestCanceledContext(t *testing.T) {
	n := NewSMTP(SMTPConfig{Host: "mail.test", Port: 587})
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.SendWelcome(ctx, &model.Lead{Email: "a@b.c"})
	assert.True(t, errors.Is(err, context.Canceled))
}

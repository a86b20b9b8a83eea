package crm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

func newTestCRM(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLead(sessionID string) *model.Lead {
	return &model.Lead{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		SessionID:          sessionID,
		Status:             model.LeadStatusNew,
		Name:               "Ana Pérez",
		Email:              "ana@cafe.mx",
		Industry:           "cafeteria",
		CustomerType:       model.CustomerPyme,
		Urgency:            model.UrgencyHigh,
		EngagementScore:    42,
		QualificationScore: 70,
		Objections:         []string{model.ObjectionPrice},
	}
}

func TestCreateAndGetLead(t *testing.T) {
	s := newTestCRM(t)
	ctx := context.Background()

	lead := sampleLead("s1")
	require.NoError(t, s.CreateLead(ctx, lead))

	got, err := s.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Name, got.Name)
	assert.Equal(t, lead.Email, got.Email)
	assert.Equal(t, []string{model.ObjectionPrice}, got.Objections)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetLeadNotFound(t *testing.T) {
	s := newTestCRM(t)
	_, err := s.GetLead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestUpdateLead(t *testing.T) {
	s := newTestCRM(t)
	ctx := context.Background()

	lead := sampleLead("s1")
	require.NoError(t, s.CreateLead(ctx, lead))

	lead.Status = model.LeadStatusQualified
	lead.Phone = "+525512345678"
	lead.QualificationScore = 85
	require.NoError(t, s.UpdateLead(ctx, lead))

	got, err := s.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusQualified, got.Status)
	assert.Equal(t, "+525512345678", got.Phone)
	assert.InDelta(t, 85, got.QualificationScore, 0.001)
}

func TestUpdateMissingLead(t *testing.T) {
	s := newTestCRM(t)
	lead := sampleLead("s1")
	assert.ErrorIs(t, s.UpdateLead(context.Background(), lead), ErrLeadNotFound)
}

func TestListLeadsOrdersByQualification(t *testing.T) {
	s := newTestCRM(t)
	ctx := context.Background()

	low := sampleLead("s1")
	low.QualificationScore = 20
	high := sampleLead("s2")
	high.QualificationScore = 90
	require.NoError(t, s.CreateLead(ctx, low))
	require.NoError(t, s.CreateLead(ctx, high))

	leads, total, err := s.ListLeads(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, leads, 2)
	assert.Equal(t, high.ID, leads[0].ID)
}

func TestNotes(t *testing.T) {
	s := newTestCRM(t)
	ctx := context.Background()

	lead := sampleLead("s1")
	require.NoError(t, s.CreateLead(ctx, lead))
	require.NoError(t, s.AddNote(ctx, &model.LeadNote{LeadID: lead.ID, Content: "pidió demo"}))

	notes, err := s.Notes(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "pidió demo", notes[0].Content)
}

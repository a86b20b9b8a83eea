package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// ErrLeadNotFound is returned when a lead id does not exist.
var ErrLeadNotFound = errors.New("lead not found")

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id                  TEXT PRIMARY KEY,
	session_id          TEXT NOT NULL,
	status              TEXT NOT NULL,
	name                TEXT NOT NULL DEFAULT '',
	email               TEXT NOT NULL DEFAULT '',
	phone               TEXT NOT NULL DEFAULT '',
	company             TEXT NOT NULL DEFAULT '',
	industry            TEXT NOT NULL DEFAULT '',
	customer_type       TEXT NOT NULL DEFAULT 'unknown',
	urgency             TEXT NOT NULL DEFAULT 'unknown',
	engagement_score    REAL NOT NULL DEFAULT 0,
	qualification_score REAL NOT NULL DEFAULT 0,
	objections          TEXT NOT NULL DEFAULT '',
	interests           TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_session ON leads(session_id);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

CREATE TABLE IF NOT EXISTS lead_notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	lead_id    TEXT NOT NULL REFERENCES leads(id),
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lead_notes_lead ON lead_notes(lead_id);
`

// SQLite is a CRM backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateLead inserts a new lead.
func (s *SQLite) CreateLead(ctx context.Context, lead *model.Lead) error {
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, session_id, status, name, email, phone, company,
			industry, customer_type, urgency,
			engagement_score, qualification_score,
			objections, interests, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.SessionID, lead.Status, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Industry, lead.CustomerType, lead.Urgency,
		lead.EngagementScore, lead.QualificationScore,
		joinList(lead.Objections), joinList(lead.Interests),
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// UpdateLead overwrites the mutable fields of an existing lead.
func (s *SQLite) UpdateLead(ctx context.Context, lead *model.Lead) error {
	lead.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE leads SET
			status = ?, name = ?, email = ?, phone = ?, company = ?,
			industry = ?, customer_type = ?, urgency = ?,
			engagement_score = ?, qualification_score = ?,
			objections = ?, interests = ?, updated_at = ?
		WHERE id = ?`,
		lead.Status, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Industry, lead.CustomerType, lead.Urgency,
		lead.EngagementScore, lead.QualificationScore,
		joinList(lead.Objections), joinList(lead.Interests), lead.UpdatedAt,
		lead.ID,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// GetLead fetches a lead by id.
func (s *SQLite) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, status, name, email, phone, company,
		       industry, customer_type, urgency,
		       engagement_score, qualification_score,
		       objections, interests, created_at, updated_at
		FROM leads WHERE id = ?`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// ListLeads returns a page of leads ordered by qualification score
// descending, plus the total count.
func (s *SQLite) ListLeads(ctx context.Context, limit, offset int) ([]model.Lead, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, status, name, email, phone, company,
		       industry, customer_type, urgency,
		       engagement_score, qualification_score,
		       objections, interests, created_at, updated_at
		FROM leads
		ORDER BY qualification_score DESC, created_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// AddNote attaches a note to a lead.
func (s *SQLite) AddNote(ctx context.Context, note *model.LeadNote) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lead_notes (lead_id, content, created_at) VALUES (?, ?, ?)`,
		note.LeadID, note.Content, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// Notes returns the notes for a lead in chronological order.
func (s *SQLite) Notes(ctx context.Context, leadID string) ([]model.LeadNote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lead_id, content, created_at FROM lead_notes WHERE lead_id = ? ORDER BY created_at`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.LeadNote
	for rows.Next() {
		var n model.LeadNote
		if err := rows.Scan(&n.LeadID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(r rowScanner) (*model.Lead, error) {
	var lead model.Lead
	var objections, interests string
	err := r.Scan(
		&lead.ID, &lead.SessionID, &lead.Status, &lead.Name, &lead.Email, &lead.Phone, &lead.Company,
		&lead.Industry, &lead.CustomerType, &lead.Urgency,
		&lead.EngagementScore, &lead.QualificationScore,
		&objections, &interests, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Objections = splitList(objections)
	lead.Interests = splitList(interests)
	return &lead, nil
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

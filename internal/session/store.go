// Package session stores live conversation state. Sessions are kept in
// memory and evicted after a period of inactivity; durable lead data lives
// in the CRM, not here.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session pairs a conversation with the profile built from it.
type Session struct {
	Conversation *model.Conversation
	Profile      *model.Profile
	LeadID       string
	WelcomeSent  bool
	Qualified    bool
	LastActivity time.Time
}

// Repository is the session storage interface.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Put(ctx context.Context, sessionID string, s *Session) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) int
}

// Store is an in-memory Repository with TTL eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *logger.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store that evicts sessions idle longer than ttl. The
// eviction loop runs until Close is called.
func NewStore(ttl time.Duration, log *logger.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   log,
		stop:     make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

func (s *Store) evictLoop() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var evicted []string
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	for _, id := range evicted {
		s.logger.Info("session evicted",
			zap.String("session_id", id),
			zap.Duration("ttl", s.ttl),
		)
	}
}

// Get returns the session and refreshes its activity timestamp.
func (s *Store) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	sess.LastActivity = time.Now()
	return sess, nil
}

// Put stores the session.
func (s *Store) Put(_ context.Context, sessionID string, sess *Session) error {
	sess.LastActivity = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sess
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction loop.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

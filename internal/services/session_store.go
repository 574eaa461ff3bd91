package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"invsummary/internal/config"
	"invsummary/internal/infrastructure"
	"invsummary/pkg/contracts/domain"
)

// SessionInfo describes a session without exposing its data
type SessionInfo struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastAccess time.Time `json:"last_access"`
	ExpiresAt  time.Time `json:"expires_at"`
	Inventory  []string  `json:"inventory"`
	HasRap     bool      `json:"has_rap"`
}

type session struct {
	id         string
	createdAt  time.Time
	lastAccess time.Time
	inventory  map[string]*domain.RowSet
	rap        *domain.RowSet
}

// SessionStore keeps each session's uploaded row-sets in memory. Sessions
// idle for longer than the TTL are removed by Run.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	ttl         time.Duration
	maxSessions int
	interval    time.Duration
	now         func() time.Time
	metrics     *infrastructure.BusinessMetrics
	logger      *slog.Logger
}

// NewSessionStore creates an empty store
func NewSessionStore(cfg config.SessionConfig, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		sessions:    make(map[string]*session),
		ttl:         cfg.TTL,
		maxSessions: cfg.MaxSessions,
		interval:    cfg.SweepInterval,
		now:         time.Now,
		metrics:     metrics,
		logger:      logger.With(slog.String("component", "session_store")),
	}
}

// Create opens a new session. When the store is full the least recently
// used session is evicted first.
func (s *SessionStore) Create(ctx context.Context) SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked(ctx)
	}

	now := s.now()
	sess := &session{
		id:         uuid.New().String(),
		createdAt:  now,
		lastAccess: now,
		inventory:  make(map[string]*domain.RowSet),
	}
	s.sessions[sess.id] = sess
	s.metrics.RecordSessionChange(ctx, 1)

	s.logger.InfoContext(ctx, "session created", slog.String("session_id", sess.id))
	return s.infoLocked(sess)
}

// Info returns a session's metadata and refreshes its idle timer
func (s *SessionStore) Info(id string) (SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return SessionInfo{}, err
	}
	return s.infoLocked(sess), nil
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.metrics.RecordSessionChange(ctx, -1)

	s.logger.InfoContext(ctx, "session deleted", slog.String("session_id", id))
	return nil
}

// PutInventory stores rs in a slot, replacing any earlier upload
func (s *SessionStore) PutInventory(id, slot string, rs *domain.RowSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return err
	}
	sess.inventory[slot] = rs
	return nil
}

// Inventory returns the session's inventory row-sets in slot order
func (s *SessionStore) Inventory(id string) ([]*domain.RowSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return nil, err
	}

	sets := make([]*domain.RowSet, 0, len(sess.inventory))
	for _, slot := range domain.InventorySlots {
		if rs, ok := sess.inventory[slot]; ok {
			sets = append(sets, rs)
		}
	}
	return sets, nil
}

// InventorySlot returns the row-set uploaded into one slot
func (s *SessionStore) InventorySlot(id, slot string) (*domain.RowSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return nil, err
	}
	rs, ok := sess.inventory[slot]
	if !ok {
		return nil, ErrSourceNotLoaded
	}
	return rs, nil
}

// PutRap stores the session's RAP row-set
func (s *SessionStore) PutRap(id string, rs *domain.RowSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return err
	}
	sess.rap = rs
	return nil
}

// Rap returns the session's RAP row-set
func (s *SessionStore) Rap(id string) (*domain.RowSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return nil, err
	}
	if sess.rap == nil {
		return nil, ErrSourceNotLoaded
	}
	return sess.rap, nil
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every session idle for longer than the TTL and returns
// how many were removed.
func (s *SessionStore) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		s.metrics.RecordSessionChange(ctx, int64(-removed))
		s.logger.InfoContext(ctx, "expired sessions removed",
			slog.Int("removed", removed),
			slog.Int("remaining", len(s.sessions)))
	}
	return removed
}

// Run sweeps expired sessions on every interval until ctx is done
func (s *SessionStore) Run(ctx context.Context) error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "session sweeper started",
		slog.Duration("interval", interval),
		slog.Duration("ttl", s.ttl))

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session sweeper stopped")
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *SessionStore) touchLocked(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().Sub(sess.lastAccess) > s.ttl {
		delete(s.sessions, id)
		s.metrics.RecordSessionChange(context.Background(), -1)
		return nil, ErrSessionNotFound
	}
	sess.lastAccess = s.now()
	return sess, nil
}

func (s *SessionStore) evictOldestLocked(ctx context.Context) {
	var oldest *session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastAccess.Before(oldest.lastAccess) {
			oldest = sess
		}
	}
	if oldest == nil {
		return
	}
	delete(s.sessions, oldest.id)
	s.metrics.RecordSessionChange(ctx, -1)
	s.logger.WarnContext(ctx, "session evicted at capacity",
		slog.String("session_id", oldest.id),
		slog.Int("max_sessions", s.maxSessions))
}

func (s *SessionStore) infoLocked(sess *session) SessionInfo {
	slots := make([]string, 0, len(sess.inventory))
	for slot := range sess.inventory {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slotRank(slots[i]) < slotRank(slots[j]) })

	return SessionInfo{
		ID:         sess.id,
		CreatedAt:  sess.createdAt,
		LastAccess: sess.lastAccess,
		ExpiresAt:  sess.lastAccess.Add(s.ttl),
		Inventory:  slots,
		HasRap:     sess.rap != nil,
	}
}

func slotRank(slot string) int {
	for i, s := range domain.InventorySlots {
		if s == slot {
			return i
		}
	}
	return len(domain.InventorySlots)
}

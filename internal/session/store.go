package session

import (
	"context"
	"sync"
	"time"

	"carviz/app"
	"carviz/domain/core"
	"carviz/internal"

	"golang.org/x/time/rate"
)

const (
	// DefaultMaxSessions bounds the session table between sweeps.
	DefaultMaxSessions = 10000

	defaultSelectRate  = 20
	defaultSelectBurst = 40
)

// entry is one viewer's controller, its selection allowance and when it
// was last touched.
type entry struct {
	controller *app.ViewController
	limiter    *rate.Limiter
	lastSeen   time.Time
}

// Options tunes a Store. Zero values take the defaults.
type Options struct {
	TTL         time.Duration
	MaxSessions int
	SelectRate  float64
	SelectBurst int
}

// Store keeps one ViewController per viewer session in memory. Sessions
// idle for longer than the TTL are evicted by CleanupExpired; when the table
// is full the least recently seen session makes room for a new one.
type Store struct {
	mu          sync.Mutex
	service     *app.ViewService
	ttl         time.Duration
	maxSessions int
	selectRate  rate.Limit
	selectBurst int
	sessions    map[core.SessionID]*entry
	now         func() time.Time
	logger      *internal.Logger
}

// NewStore creates an empty session store over a shared view service.
func NewStore(service *app.ViewService, opts Options, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.SelectRate <= 0 {
		opts.SelectRate = defaultSelectRate
	}
	if opts.SelectBurst <= 0 {
		opts.SelectBurst = defaultSelectBurst
	}
	return &Store{
		service:     service,
		ttl:         opts.TTL,
		maxSessions: opts.MaxSessions,
		selectRate:  rate.Limit(opts.SelectRate),
		selectBurst: opts.SelectBurst,
		sessions:    make(map[core.SessionID]*entry),
		now:         time.Now,
		logger:      logger.With("Session"),
	}
}

// Lookup returns the controller of a live session without creating one.
func (s *Store) Lookup(id core.SessionID) (*app.ViewController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.sessions[id]
	if !ok || now.Sub(e.lastSeen) > s.ttl {
		return nil, false
	}
	e.lastSeen = now
	return e.controller, true
}

// Get returns the controller for id, creating a fresh one with nothing
// selected when the session is unknown or expired.
func (s *Store) Get(id core.SessionID) *app.ViewController {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id).controller
}

// AllowSelect reports whether the session may make another selection now.
// Each session has its own allowance.
func (s *Store) AllowSelect(id core.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id).limiter.Allow()
}

func (s *Store) getLocked(id core.SessionID) *entry {
	now := s.now()
	if e, ok := s.sessions[id]; ok && now.Sub(e.lastSeen) <= s.ttl {
		e.lastSeen = now
		return e
	}

	if _, exists := s.sessions[id]; !exists && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	e := &entry{
		controller: app.NewViewController(s.service),
		limiter:    rate.NewLimiter(s.selectRate, s.selectBurst),
		lastSeen:   now,
	}
	s.sessions[id] = e
	s.logger.Debug("opened session %s", id)
	return e
}

func (s *Store) evictOldestLocked() {
	var oldestID core.SessionID
	var oldest time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		s.logger.Debug("session table full, evicted %s", oldestID)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired removes sessions idle for longer than the TTL and returns
// how many were removed.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("evicted %d idle sessions", removed)
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}

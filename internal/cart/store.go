package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/restokasir/kasir-web/internal/domain"
)

// Store holds one cart per browsing session, in memory only. Sessions
// are identified by an opaque cookie value; carts do not survive a
// process restart. The Store is injected into every handler that needs
// it rather than shared as a package global.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	logger   *slog.Logger
}

type session struct {
	lines       []Line
	touchedAt   time.Time
	checkingOut bool
}

func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Add puts one unit of product into the session's cart: an existing
// line for the same product id gains quantity 1, otherwise a new line
// is appended. Add never fails.
func (s *Store) Add(sessionID string, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	for i := range sess.lines {
		if sess.lines[i].Product.ID == product.ID {
			sess.lines[i].Quantity++
			return
		}
	}
	sess.lines = append(sess.lines, Line{Product: product, Quantity: 1})
}

// SetQuantity sets a line's quantity; 0 or below removes the line.
// An id not in the cart is a no-op.
func (s *Store) SetQuantity(sessionID string, productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	for i := range sess.lines {
		if sess.lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			sess.lines = append(sess.lines[:i], sess.lines[i+1:]...)
		} else {
			sess.lines[i].Quantity = quantity
		}
		return
	}
}

func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(sessionID).lines = nil
}

// Get returns a snapshot of the session's cart.
func (s *Store) Get(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	lines := make([]Line, len(sess.lines))
	copy(lines, sess.lines)
	return Cart{Lines: lines}
}

// BeginCheckout marks the session as having a checkout in flight and
// reports whether the caller won the flag. A second submit while the
// first is still running gets false and must not issue a request.
func (s *Store) BeginCheckout(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.checkingOut {
		return false
	}
	sess.checkingOut = true
	return true
}

func (s *Store) EndCheckout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(sessionID).checkingOut = false
}

// Janitor evicts sessions idle longer than the store TTL until ctx is
// cancelled. Run it from main as a goroutine.
func (s *Store) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(time.Now()); n > 0 {
				s.logger.Info("evicted idle carts", "count", n)
			}
		}
	}
}

func (s *Store) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.checkingOut {
			continue
		}
		if now.Sub(sess.touchedAt) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// session returns the live session record, creating it on first use.
// Callers must hold s.mu.
func (s *Store) session(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.touchedAt = time.Now()
	return sess
}

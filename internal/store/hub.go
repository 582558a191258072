package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Zachkp/portfolio-admin/internal/session"
)

// Hub keeps one Feed per signed-in owner.
type Hub struct {
	backend Backend
	now     func() time.Time

	mu    sync.Mutex
	feeds map[string]*Feed
	// last time each owner's feed was handed out
	seen map[string]time.Time
}

func NewHub(backend Backend) *Hub {
	return &Hub{
		backend: backend,
		now:     time.Now,
		feeds:   map[string]*Feed{},
		seen:    map[string]time.Time{},
	}
}

// SignIn opens the owner's feed, replacing one that previously failed.
func (h *Hub) SignIn(ctx context.Context, sess session.Session) (*Feed, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[sess.UID] = h.now()
	if f, ok := h.feeds[sess.UID]; ok {
		if state, _ := f.Status(); state != StateFailed {
			return f, nil
		}
		f.Close()
		delete(h.feeds, sess.UID)
	}
	return h.open(ctx, sess)
}

// Feed returns the owner's feed, opening it for a session restored from a
// cookie. A failed feed is returned as-is; it stays failed until the next
// sign-in.
func (h *Hub) Feed(ctx context.Context, sess session.Session) (*Feed, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[sess.UID] = h.now()
	if f, ok := h.feeds[sess.UID]; ok {
		return f, nil
	}
	return h.open(ctx, sess)
}

func (h *Hub) open(ctx context.Context, sess session.Session) (*Feed, error) {
	f := NewFeed(h.backend, sess)
	h.feeds[sess.UID] = f
	// the subscription outlives the request that started it
	return f, f.Open(context.WithoutCancel(ctx))
}

// SignOut closes and forgets the owner's feed.
func (h *Hub) SignOut(uid string) {
	h.mu.Lock()
	f, ok := h.feeds[uid]
	delete(h.feeds, uid)
	delete(h.seen, uid)
	h.mu.Unlock()
	if ok {
		f.Close()
	}
}

// Sweep closes feeds nobody has asked for within idle. With idle set to the
// session lifetime, every token that could still reach a swept feed has
// expired. It returns the number of feeds closed.
func (h *Hub) Sweep(idle time.Duration) int {
	cutoff := h.now().Add(-idle)
	h.mu.Lock()
	var stale []*Feed
	for uid, f := range h.feeds {
		if h.seen[uid].Before(cutoff) {
			stale = append(stale, f)
			delete(h.feeds, uid)
			delete(h.seen, uid)
		}
	}
	h.mu.Unlock()

	for _, f := range stale {
		log.Printf("Closing idle record feed for %s", f.Session().UID)
		f.Close()
	}
	return len(stale)
}

// Close tears down every feed and the backend.
func (h *Hub) Close() error {
	h.mu.Lock()
	feeds := h.feeds
	h.feeds = map[string]*Feed{}
	h.seen = map[string]time.Time{}
	h.mu.Unlock()
	for _, f := range feeds {
		f.Close()
	}
	return h.backend.Close()
}

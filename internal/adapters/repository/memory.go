package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ghostboard/internal/domain/model"
	"github.com/okian/ghostboard/pkg/metrics"
)

const defaultMaxSize = 10_000

// node is an element of the insertion-ordered list, newest at head.
type node struct {
	profile   model.Profile
	expiresAt time.Time
	prev      *node
	next      *node
}

// MemoryStore is a bounded in-process Store.
// When full, the oldest inserted profile is evicted first.
type MemoryStore struct {
	mu      sync.Mutex
	items   map[string]*node
	head    *node
	tail    *node
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory profile store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		items:   make(map[string]*node),
		maxSize: defaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a live cached profile.
func (s *MemoryStore) Get(_ context.Context, userID string) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[userID]
	if !ok {
		metrics.RecordCacheRequest("miss")
		return model.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	if s.expired(n) {
		s.unlink(n)
		delete(s.items, userID)
		metrics.UpdateCacheEntries(len(s.items))
		metrics.RecordCacheRequest("miss")
		return model.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	metrics.RecordCacheRequest("hit")
	return n.profile, nil
}

// Put inserts or refreshes a profile. A refreshed profile moves to the head.
func (s *MemoryStore) Put(_ context.Context, p model.Profile) error {
	if p.UserID == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.items[p.UserID]; ok {
		s.unlink(n)
		delete(s.items, p.UserID)
	}

	if s.maxSize > 0 {
		for len(s.items) >= s.maxSize && s.tail != nil {
			oldest := s.tail
			s.unlink(oldest)
			delete(s.items, oldest.profile.UserID)
		}
	}

	n := &node{profile: p}
	if s.ttl > 0 {
		n.expiresAt = s.now().Add(s.ttl)
	}
	s.pushFront(n)
	s.items[p.UserID] = n
	metrics.UpdateCacheEntries(len(s.items))
	return nil
}

// Count returns the number of stored entries, expired ones included until
// they are read or evicted.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Must be called with s.mu held.
func (s *MemoryStore) expired(n *node) bool {
	return !n.expiresAt.IsZero() && !s.now().Before(n.expiresAt)
}

// Must be called with s.mu held.
func (s *MemoryStore) pushFront(n *node) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// Must be called with s.mu held.
func (s *MemoryStore) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

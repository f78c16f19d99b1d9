package repositories

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"packaging-report/internal/domain/entities"
	domainrepos "packaging-report/internal/domain/repositories"
)

type sessionEntry struct {
	owner   string
	session *entities.Session
	savedAt time.Time
}

// MemorySessionRepository keeps the latest session of each owner in process memory only.
// Entries expire after ttl and the least recently saved owner is dropped past maxOwners.
type MemorySessionRepository struct {
	ttl       time.Duration
	maxOwners int
	now       func() time.Time

	// 先頭が最近保存されたもの
	lru    *list.List
	owners map[string]*list.Element
	byID   map[entities.SessionID]*list.Element
	mu     sync.Mutex
}

func NewMemorySessionRepository(ttl time.Duration, maxOwners int) domainrepos.SessionRepository {
	return newMemorySessionRepository(ttl, maxOwners, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, maxOwners int, now func() time.Time) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:       ttl,
		maxOwners: maxOwners,
		now:       now,
		lru:       list.New(),
		owners:    make(map[string]*list.Element),
		byID:      make(map[entities.SessionID]*list.Element),
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, owner string, session *entities.Session) error {
	if owner == "" {
		return fmt.Errorf("owner is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 前回のセッションは置き換える（マージしない）
	if elem, ok := r.owners[owner]; ok {
		r.remove(elem)
	}

	elem := r.lru.PushFront(&sessionEntry{
		owner:   owner,
		session: session,
		savedAt: r.now(),
	})
	r.owners[owner] = elem
	r.byID[session.ID()] = elem

	r.evict()
	return nil
}

func (r *MemorySessionRepository) FindLatest(ctx context.Context, owner string) (*entities.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evict()

	elem, exists := r.owners[owner]
	if !exists {
		return nil, fmt.Errorf("no session for owner: %s", owner)
	}

	return elem.Value.(*sessionEntry).session, nil
}

func (r *MemorySessionRepository) FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evict()

	elem, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("session not found: %s", id)
	}

	return elem.Value.(*sessionEntry).session, nil
}

// Len returns the number of owners currently held.
func (r *MemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lru.Len()
}

// evict drops expired entries from the tail, then trims to maxOwners. Caller holds mu.
func (r *MemorySessionRepository) evict() {
	if r.ttl > 0 {
		cutoff := r.now().Add(-r.ttl)
		for back := r.lru.Back(); back != nil; back = r.lru.Back() {
			if back.Value.(*sessionEntry).savedAt.After(cutoff) {
				break
			}
			r.remove(back)
		}
	}

	if r.maxOwners > 0 {
		for r.lru.Len() > r.maxOwners {
			r.remove(r.lru.Back())
		}
	}
}

func (r *MemorySessionRepository) remove(elem *list.Element) {
	entry := r.lru.Remove(elem).(*sessionEntry)
	delete(r.owners, entry.owner)
	delete(r.byID, entry.session.ID())
}

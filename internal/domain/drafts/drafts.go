// Package drafts keeps open entry form flows addressable by id.
package drafts

import (
	"sync"

	"github.com/google/uuid"

	"github.com/okian/edutrack/internal/domain/wizard"
)

const defaultMaxSize = 1024

// Draft pairs a draft id with the state of its flow.
type Draft struct {
	ID string `json:"id"`
	wizard.Snapshot
}

// node is an element of the insertion-ordered list; head is the newest.
type node struct {
	id         string
	flow       *wizard.Flow
	prev, next *node
}

// Registry is a bounded, insertion-ordered map of drafts. When full, the
// oldest draft is evicted.
type Registry struct {
	mu      sync.Mutex
	byID    map[string]*node
	head    *node
	tail    *node
	maxSize int
	newID   func() string
	evicted uint64
}

// NewRegistry creates a registry with configuration options.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:    make(map[string]*node),
		maxSize: defaultMaxSize,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add stores flow under a fresh id. evicted reports whether the oldest draft
// was dropped to make room.
func (r *Registry) Add(flow *wizard.Flow) (id string, evicted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 && len(r.byID) >= r.maxSize {
		r.evictOldest()
		evicted = true
	}

	n := &node{id: r.newID(), flow: flow, next: r.head}
	if r.head != nil {
		r.head.prev = n
	}
	r.head = n
	if r.tail == nil {
		r.tail = n
	}
	r.byID[n.id] = n
	return n.id, evicted
}

// Get returns the draft stored under id.
func (r *Registry) Get(id string) (*wizard.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n.flow, nil
}

// Remove drops the draft stored under id. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byID[id]; ok {
		r.unlink(n)
	}
}

// Len returns the number of open drafts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Evicted returns how many drafts were dropped for space so far.
func (r *Registry) Evicted() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evicted
}

// evictOldest removes the tail. Must be called with r.mu held.
func (r *Registry) evictOldest() {
	if r.tail == nil {
		return
	}
	r.unlink(r.tail)
	r.evicted++
}

// unlink removes n from the list and the index. Must be called with r.mu held.
func (r *Registry) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		r.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		r.tail = n.prev
	}
	n.prev, n.next = nil, nil
	delete(r.byID, n.id)
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

// Session is the per-user state of the menu workflow: the suggestion on
// screen, the ingredients awaiting confirmation and pending messages.
// Handlers receive it explicitly; nothing is kept in package globals.
type Session struct {
	ID         string
	Suggestion string
	// Pending holds the ingredient names read from Suggestion while the user
	// decides whether to delete them. Empty when no confirmation is open.
	Pending  []string
	flashes  []Flash
	lastSeen time.Time
}

func (s *Session) AddFlash(kind FlashKind, msg string) {
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: msg})
}

// TakeFlashes returns the queued messages and clears the queue.
func (s *Session) TakeFlashes() []Flash {
	out := s.flashes
	s.flashes = nil
	return out
}

// ClearSuggestion returns the session to idle.
func (s *Session) ClearSuggestion() {
	s.Suggestion = ""
	s.Pending = nil
}

// hasState reports whether the session carries anything worth keeping
// between requests.
func (s *Session) hasState() bool {
	return s.Suggestion != "" || len(s.Pending) > 0 || len(s.flashes) > 0
}

// DefaultMaxSessions bounds a Store built by NewStore.
const DefaultMaxSessions = 10000

// Store keeps sessions in memory keyed by id. A new session is only kept
// once an Update leaves state in it. Sessions idle for longer than the TTL
// are dropped on the next lookup, and when the store is full the least
// recently seen session makes room.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
	}
}

// Get returns the session for id, or a fresh one when id is unknown or
// expired. The bool reports whether a new session was created.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expireLocked(now)

	if s, ok := st.sessions[id]; ok {
		s.lastSeen = now
		return s, false
	}

	return &Session{ID: uuid.NewString(), lastSeen: now}, true
}

// Update runs fn with exclusive access to the session so concurrent requests
// from the same browser cannot interleave state changes. A session that was
// not stored yet is kept if fn left state in it.
func (st *Store) Update(s *Session, fn func(*Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(s)

	if _, ok := st.sessions[s.ID]; ok || !s.hasState() {
		return
	}
	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		st.evictOldestLocked()
	}
	st.sessions[s.ID] = s
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) expireLocked(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *Store) evictOldestLocked() {
	var oldest *Session
	for _, s := range st.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(st.sessions, oldest.ID)
	}
}

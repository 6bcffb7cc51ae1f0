package contextstore

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"meal-planning-assistant/internal/chat"
)

// Store is an in-memory session context store with idle-TTL eviction and a
// bounded session count. All reads return a copy; mutation goes through
// Update so that concurrent patches to one session merge atomically.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *chat.SessionContext]
}

// New builds a store evicting sessions untouched for ttl, holding at most
// maxSessions entries. Zero maxSessions means unbounded.
func New(ttl time.Duration, maxSessions int) *Store {
	return &Store{
		cache: expirable.NewLRU[string, *chat.SessionContext](maxSessions, nil, ttl),
	}
}

// Get returns a copy of the session's context, creating an empty one on
// first access. Expired sessions look identical to new ones.
func (s *Store) Get(sessionID string) *chat.SessionContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.cache.Get(sessionID)
	if !ok {
		sc = &chat.SessionContext{
			SessionID:       sessionID,
			LastToolResults: map[string]interface{}{},
		}
		s.cache.Add(sessionID, sc)
	}
	return sc.Clone()
}

// Update merges patch into the session's context, last write wins per field.
// A nil pointer leaves the field alone; a pointer to "" clears it. Tool
// results overwrite per tool name.
func (s *Store) Update(sessionID string, patch chat.ContextPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.cache.Get(sessionID)
	if !ok {
		sc = &chat.SessionContext{
			SessionID:       sessionID,
			LastToolResults: map[string]interface{}{},
		}
	}

	if patch.UserID != nil {
		sc.UserID = *patch.UserID
	}
	if patch.MealPlanID != nil {
		sc.MealPlanID = *patch.MealPlanID
	}
	if patch.GroceryListID != nil {
		sc.GroceryListID = *patch.GroceryListID
	}
	for name, result := range patch.ToolResults {
		sc.LastToolResults[name] = result
	}

	// Re-add to refresh the idle TTL.
	s.cache.Add(sessionID, sc)
}

var _ chat.ContextStore = (*Store)(nil)

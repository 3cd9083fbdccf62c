package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies the author of a turn.
type Speaker string

const (
	SpeakerUser   Speaker = "user"
	SpeakerSystem Speaker = "system"
)

// Turn is one entry in the chat history. Created once, immutable
// thereafter; a superseding turn is a new entry, never an edit.
type Turn struct {
	ID        uuid.UUID
	Speaker   Speaker
	Timestamp time.Time
	Content   string
	Citations []string
	AudioRef  string
	Voice     bool
	LatencyMS int64
}

// NewTurn creates a turn with a fresh id and the current timestamp.
func NewTurn(speaker Speaker, content string) Turn {
	return Turn{
		ID:        uuid.New(),
		Speaker:   speaker,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// Store is an append-only, insertion-ordered log of turns. Append order is
// call order; turns are never reordered or mutated in place.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// Turns returns a copy of the log in insertion order.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

package session

import (
	"context"
	"sync"

	"github.com/supplysight/assistant-core/internal/assist/model"
)

// MemoryStore keeps session state in process memory. It backs tests and
// single-instance deployments; multi-instance deployments use RedisStore.
type MemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string][]model.Message
	activity    map[string][]model.ActivityEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transcripts: make(map[string][]model.Message),
		activity:    make(map[string][]model.ActivityEntry),
	}
}

func (s *MemoryStore) AppendMessage(_ context.Context, sessionID string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[sessionID] = append(s.transcripts[sessionID], msg)
	return nil
}

func (s *MemoryStore) LoadTranscript(_ context.Context, sessionID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.transcripts[sessionID]))
	copy(out, s.transcripts[sessionID])
	return out, nil
}

func (s *MemoryStore) AppendActivity(_ context.Context, sessionID string, entry model.ActivityEntry, cap int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]model.ActivityEntry{entry}, s.activity[sessionID]...)
	if cap > 0 && len(entries) > cap {
		entries = entries[:cap]
	}
	s.activity[sessionID] = entries
	return nil
}

func (s *MemoryStore) LoadActivity(_ context.Context, sessionID string) ([]model.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ActivityEntry, len(s.activity[sessionID]))
	copy(out, s.activity[sessionID])
	return out, nil
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string, greeting model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[sessionID] = []model.Message{greeting}
	delete(s.activity, sessionID)
	return nil
}

var _ model.SessionRepository = (*MemoryStore)(nil)

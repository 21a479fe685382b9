package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore хранит сессии в памяти процесса.
// Сессии хранятся сериализованными, чтобы вызывающий код не делил указатели с хранилищем.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore создает хранилище; ttl <= 0 - без истечения
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save сохраняет сессию и продлевает TTL
func (s *MemoryStore) Save(ctx context.Context, sess *domain.BookingSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{payload: payload}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[sess.ID] = entry
	return nil
}

// Get загружает сессию по ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	var sess domain.BookingSession
	if err := json.Unmarshal(entry.payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &sess, nil
}

// Delete удаляет сессию
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

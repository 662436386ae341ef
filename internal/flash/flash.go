package flash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store keeps one-shot messages per browser session until the next page
// render pops them.
type Store interface {
	Push(ctx context.Context, session, message string) error
	Pop(ctx context.Context, session string) ([]string, error)
}

const keyPrefix = "flash:"

type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) Push(ctx context.Context, session, message string) error {
	key := keyPrefix + session
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, message)
		if s.TTL > 0 {
			pipe.Expire(ctx, key, s.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("push flash for session %s: %w", session, err)
	}
	return nil
}

// Pop returns every pending message for the session in push order and
// clears them atomically.
func (s *RedisStore) Pop(ctx context.Context, session string) ([]string, error) {
	key := keyPrefix + session
	var messages *redis.StringSliceCmd
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		messages = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pop flash for session %s: %w", session, err)
	}
	return messages.Val(), nil
}

type memoryEntry struct {
	messages []string
	expires  time.Time
}

// MemoryStore is the single-process fallback used when no Redis address is
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: map[string]*memoryEntry{}, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Push(ctx context.Context, session, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	e, ok := s.entries[session]
	if !ok {
		e = &memoryEntry{}
		s.entries[session] = e
	}
	e.messages = append(e.messages, message)
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	return nil
}

func (s *MemoryStore) Pop(ctx context.Context, session string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	e, ok := s.entries[session]
	if !ok {
		return nil, nil
	}
	delete(s.entries, session)
	return e.messages, nil
}

func (s *MemoryStore) evictExpired() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

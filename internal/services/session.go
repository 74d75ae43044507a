package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"recipebox/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps server-side session state keyed by an opaque token.
// Resolve never fails: a missing, unknown or unreadable token is simply
// not a session.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (uint, bool)
	Destroy(ctx context.Context, token string) error
	Close() error
}

// MemorySessionStore is a process-local SessionStore. Sessions are lost on
// restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]uint
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]uint)}
}

func (m *MemorySessionStore) Create(ctx context.Context, userID uint) (string, error) {
	token := utils.GenerateSessionToken()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return token, nil
}

func (m *MemorySessionStore) Resolve(ctx context.Context, token string) (uint, bool) {
	if token == "" {
		return 0, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	userID, ok := m.sessions[token]
	return userID, ok
}

func (m *MemorySessionStore) Destroy(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemorySessionStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]uint)
	return nil
}

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions in Redis so they survive restarts and are
// shared between instances. A zero ttl means sessions never expire.
type RedisSessionStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl, logger: logger}
}

func (r *RedisSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	token := utils.GenerateSessionToken()
	if err := r.rdb.Set(ctx, sessionKeyPrefix+token, userID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (r *RedisSessionStore) Resolve(ctx context.Context, token string) (uint, bool) {
	if token == "" {
		return 0, false
	}

	val, err := r.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("Failed to resolve session", "error", err)
		}
		return 0, false
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		r.logger.Warn("Corrupt session value", "error", err)
		return 0, false
	}
	return uint(userID), true
}

func (r *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Close() error {
	return r.rdb.Close()
}

package bot

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore 按 chat id 保存会话
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*Session, bool, error)
	Put(ctx context.Context, session *Session) error
	Remove(ctx context.Context, chatID int64) error
}

// MemoryStore 进程内会话存储，重启后丢失
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, chatID int64) (*Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	return s, ok, nil
}

func (m *MemoryStore) Put(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ChatID] = session
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

const sessionKeyPrefix = "bot:session:"

// RedisStore 会话以 JSON 存入 redis，多实例共享
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(chatID, 10)
}

func (r *RedisStore) Get(ctx context.Context, chatID int64) (*Session, bool, error) {
	data, err := r.client.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (r *RedisStore) Put(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.ChatID), data, r.ttl).Err()
}

func (r *RedisStore) Remove(ctx context.Context, chatID int64) error {
	return r.client.Del(ctx, sessionKey(chatID)).Err()
}

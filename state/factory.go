package state

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hupe1980/chatmesh/session"
	"github.com/redis/go-redis/v9"
)

// StoreType represents the type of state store.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// Default key the snapshot is stored under.
const defaultKey = "chatmesh:state"

// NewStore creates a new Store based on the given type. Supports "memory"
// and "redis" driver types. For Redis, requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{key: defaultKey}

	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return &inMemoryStore{}, nil

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisStore{
			client: config.redisClient,
			ttl:    config.redisTTL,
			key:    config.key,
		}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}

// inMemoryStore implements Store using a single guarded slot. The snapshot
// is serialized on save so a reload exercises the same round trip as a real
// backend.
type inMemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// Load implements Store.
func (s *inMemoryStore) Load(ctx context.Context) (*session.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, nil
	}
	var snap session.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save implements Store.
func (s *inMemoryStore) Save(ctx context.Context, snap *session.Snapshot) error {
	val, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = val
	return nil
}

// Close implements Store.
func (s *inMemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// redisStore implements Store using a single Redis key.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

// Load implements Store.
func (s *redisStore) Load(ctx context.Context) (*session.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save implements Store.
func (s *redisStore) Save(ctx context.Context, snap *session.Snapshot) error {
	val, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, val, s.ttl).Err()
}

// Close implements Store.
func (s *redisStore) Close() error {
	return s.client.Close()
}

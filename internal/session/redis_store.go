package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emberhollow/adventure/pkg/memory"
)

const (
	sessionKeyPrefix = "session:"

	// sessionTTL is refreshed on every load and save, so only sessions
	// idle for a full hour expire.
	sessionTTL = time.Hour
)

// RedisStore persists sessions in Redis, letting them survive process
// restarts. Turn serialization is still process-local (the lock table);
// multi-node session sharing is out of scope.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	locks  *lockTable
	limits Limits
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(redisURL string, limits Limits, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	return &RedisStore{
		client: rdb,
		logger: logger,
		locks:  newLockTable(),
		limits: limits,
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	s.logger.Info("Redis connection closed")
	return nil
}

func (s *RedisStore) Lock(id string) func() {
	return s.locks.Lock(id)
}

func (s *RedisStore) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	sess = NewSession(id, s.limits)
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	cmd := s.client.Get(ctx, sessionKeyPrefix+id)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.logger.Error("Failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(cmd.Val()), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	// Sliding expiry: an active session stays alive however long the
	// adventure runs. A failed refresh is not worth failing the load.
	if err := s.client.Expire(ctx, sessionKeyPrefix+id, sessionTTL).Err(); err != nil {
		s.logger.Warn("Failed to refresh session TTL", "session_id", id, "error", err)
	}
	// Records written before memory limits existed deserialize without a
	// manager; give them one so the engine never nil-checks.
	if sess.Memory == nil {
		sess.Memory = memory.NewManager(s.limits.ShortMemoryLimit, s.limits.LongMemoryMaxChars)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("Failed to marshal session", "session_id", sess.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, string(data), sessionTTL).Err(); err != nil {
		s.logger.Error("Failed to save session", "session_id", sess.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		s.logger.Error("Failed to reset session", "session_id", id, "error", err)
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}

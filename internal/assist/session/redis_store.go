package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supplysight/assistant-core/internal/assist/model"
	errx "github.com/supplysight/assistant-core/internal/core/error"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

// RedisStore persists session state in Redis so the widget keeps its
// transcript between openings and across service instances. Entries are
// stored as JSON rows; the TTL is touched on every append.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) transcriptKey(sessionID string) string {
	return fmt.Sprintf("assist:session:%s:transcript", sessionID)
}

func (s *RedisStore) activityKey(sessionID string) string {
	return fmt.Sprintf("assist:session:%s:activity", sessionID)
}

func (s *RedisStore) AppendMessage(ctx context.Context, sessionID string, msg model.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := s.transcriptKey(sessionID)

	if err := s.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	return s.touch(ctx, key)
}

func (s *RedisStore) LoadTranscript(ctx context.Context, sessionID string) ([]model.Message, error) {
	key := s.transcriptKey(sessionID)

	rows, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Message{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]model.Message, 0, len(rows))
	for i, row := range rows {
		var m model.Message
		if err := json.Unmarshal([]byte(row), &m); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (s *RedisStore) AppendActivity(ctx context.Context, sessionID string, entry model.ActivityEntry, cap int) error {
	b, err := json.Marshal(entry)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal activity entry")
		return fmt.Errorf("marshal activity entry: %w", err)
	}
	key := s.activityKey(sessionID)

	// LPush keeps the list most-recent-first; LTrim evicts the oldest
	// entries beyond the cap.
	if err := s.rdb.LPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push activity entry to redis")
		return errx.WrapRedis(err)
	}
	if cap > 0 {
		if err := s.rdb.LTrim(ctx, key, 0, int64(cap)-1).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to trim activity log")
			return errx.WrapRedis(err)
		}
	}
	return s.touch(ctx, key)
}

func (s *RedisStore) LoadActivity(ctx context.Context, sessionID string) ([]model.ActivityEntry, error) {
	key := s.activityKey(sessionID)

	rows, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.ActivityEntry{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load activity log from redis")
		return nil, errx.WrapRedis(err)
	}

	entries := make([]model.ActivityEntry, 0, len(rows))
	for i, row := range rows {
		var e model.ActivityEntry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal activity entry")
			return nil, fmt.Errorf("unmarshal activity entry at index %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisStore) Reset(ctx context.Context, sessionID string, greeting model.Message) error {
	b, err := json.Marshal(greeting)
	if err != nil {
		return fmt.Errorf("marshal greeting: %w", err)
	}

	tKey := s.transcriptKey(sessionID)
	aKey := s.activityKey(sessionID)

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, tKey, aKey)
	pipe.RPush(ctx, tKey, b)
	if s.ttl > 0 {
		pipe.Expire(ctx, tKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to reset session")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisStore) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	ok, err := s.rdb.Expire(ctx, key, s.ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", s.ttl).Msg("failed to set TTL on session key")
	}
	return nil
}

var _ model.SessionRepository = (*RedisStore)(nil)

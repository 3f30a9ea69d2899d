package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/go-redis/v9"
)

const (
	redisGuildSetKey  = "cherry:guilds"
	redisPrefixField  = "prefix"
	redisRepeatField  = "repeat"
	redisGuildKeyBase = "cherry:guild:"
)

func redisGuildKey(guildID snowflake.ID) string {
	return redisGuildKeyBase + guildID.String()
}

// RedisStore keeps each guild's settings in a hash, plus a set of known guilds.
type RedisStore struct {
	rdb *redis.Client
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStore(rdb), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) CreateGuild(ctx context.Context, guildID snowflake.ID) error {
	key := redisGuildKey(guildID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, redisGuildSetKey, guildID.String())
		pipe.HSetNX(ctx, key, redisPrefixField, "")
		pipe.HSetNX(ctx, key, redisRepeatField, "0")
		return nil
	})
	if err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	return nil
}

func (s *RedisStore) RemoveGuild(ctx context.Context, guildID snowflake.ID) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, redisGuildSetKey, guildID.String())
		pipe.Del(ctx, redisGuildKey(guildID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove guild: %w", err)
	}
	return nil
}

func (s *RedisStore) ListGuilds(ctx context.Context) ([]snowflake.ID, error) {
	members, err := s.rdb.SMembers(ctx, redisGuildSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	ids := make([]snowflake.ID, 0, len(members))
	for _, member := range members {
		id, err := snowflake.Parse(member)
		if err != nil {
			return nil, fmt.Errorf("parse guild id %q: %w", member, err)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *RedisStore) GetPrefix(ctx context.Context, guildID snowflake.ID) (string, error) {
	prefix, err := s.rdb.HGet(ctx, redisGuildKey(guildID), redisPrefixField).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get prefix: %w", err)
	}
	return prefix, nil
}

func (s *RedisStore) SetPrefix(ctx context.Context, guildID snowflake.ID, prefix string) error {
	return s.set(ctx, guildID, redisPrefixField, prefix)
}

func (s *RedisStore) GetRepeat(ctx context.Context, guildID snowflake.ID) (bool, error) {
	repeat, err := s.rdb.HGet(ctx, redisGuildKey(guildID), redisRepeatField).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get repeat: %w", err)
	}
	return repeat == "1", nil
}

func (s *RedisStore) SetRepeat(ctx context.Context, guildID snowflake.ID, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.set(ctx, guildID, redisRepeatField, value)
}

func (s *RedisStore) set(ctx context.Context, guildID snowflake.ID, field, value string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, redisGuildSetKey, guildID.String())
		pipe.HSet(ctx, redisGuildKey(guildID), field, value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

var _ Store = (*RedisStore)(nil)

package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

const redisKeyPrefix = "fee-wizard:session:"

// RedisOptions configures the redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps sessions as redis strings with a TTL
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore connects to redis and verifies the connection
func NewRedisStore(ctx context.Context, opts RedisOptions, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.TypeStorage, "connect to redis", err)
	}
	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (*types.AnswerSet, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "load session", err)
	}
	return decode(data)
}

func (s *RedisStore) Save(ctx context.Context, id string, answers *types.AnswerSet) error {
	data, err := encode(answers)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(id), data, s.ttl).Err(); err != nil {
		return errors.Wrap(errors.TypeStorage, "save session", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return errors.Wrap(errors.TypeStorage, "delete session", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

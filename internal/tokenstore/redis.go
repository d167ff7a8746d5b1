package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/medicare/clinicctl/internal/model"
)

const redisKey = "clinicctl:tokens"

// Redis keeps the credential pair as one JSON value under a fixed key,
// so both tokens always move together.
type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Save(pair model.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	return r.client.Set(context.Background(), redisKey, data, 0).Err()
}

func (r *Redis) Load() (model.TokenPair, error) {
	data, err := r.client.Get(context.Background(), redisKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return model.TokenPair{}, nil
		}
		return model.TokenPair{}, fmt.Errorf("failed to read tokens: %w", err)
	}

	var pair model.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return pair, nil
}

func (r *Redis) Clear() error {
	return r.client.Del(context.Background(), redisKey).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func setJSON(ctx context.Context, client *redis.Client, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err = client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// getJSON - loads and decodes the value stored under key; a missing key yields notFound.
func getJSON[T any](ctx context.Context, client *redis.Client, key string, notFound error) (*T, error) {
	response, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var value T
	if err = json.Unmarshal(response, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return &value, nil
}

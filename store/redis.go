// store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CreativeUnicorns/usersettings"
)

// redisClient is the subset of *redis.Client methods RedisStore uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisStore implements the Store interface using Redis. Values are stored as
// JSON under per-user keys with no expiry: Redis acts as the system of record
// here, not as a cache.
type RedisStore struct {
	client redisClient
}

// NewRedisStore initializes a new RedisStore instance and verifies the
// connection with a ping.
func NewRedisStore(addr string, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

func settingKey(userID, key string) string {
	return fmt.Sprintf("settings:%s:%s", userID, key)
}

// GetDisplaySettings retrieves the display settings stored for a user.
// It returns usersettings.ErrNotFound if the user never set them.
func (s *RedisStore) GetDisplaySettings(ctx context.Context, userID string) (usersettings.DisplaySettings, error) {
	var settings usersettings.DisplaySettings
	if err := s.getValue(ctx, settingKey(userID, keyDisplaySettings), &settings); err != nil {
		return usersettings.DisplaySettings{}, err
	}
	return settings, nil
}

// SetDisplaySettings stores the display settings for a user.
func (s *RedisStore) SetDisplaySettings(ctx context.Context, userID string, settings usersettings.DisplaySettings) error {
	return s.setValue(ctx, settingKey(userID, keyDisplaySettings), settings)
}

// GetLanguage retrieves the language stored for a user.
// It returns usersettings.ErrNotFound if the user never set one.
func (s *RedisStore) GetLanguage(ctx context.Context, userID string) (usersettings.Language, error) {
	var language usersettings.Language
	if err := s.getValue(ctx, settingKey(userID, keyLanguage), &language); err != nil {
		return "", err
	}
	return language, nil
}

// SetLanguage stores the language for a user.
func (s *RedisStore) SetLanguage(ctx context.Context, userID string, language usersettings.Language) error {
	return s.setValue(ctx, settingKey(userID, keyLanguage), language)
}

// ClearSettings deletes both settings keys for a user. Clearing a user with
// no stored settings is not an error.
func (s *RedisStore) ClearSettings(ctx context.Context, userID string) error {
	err := s.client.Del(ctx,
		settingKey(userID, keyDisplaySettings),
		settingKey(userID, keyLanguage),
	).Err()
	if err != nil {
		return fmt.Errorf("redis: failed to clear settings for user '%s': %w", userID, err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) getValue(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return usersettings.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis: failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("redis: failed to unmarshal %s: %w", key, err)
	}

	return nil
}

func (s *RedisStore) setValue(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: failed to set %s: %w", key, err)
	}

	return nil
}

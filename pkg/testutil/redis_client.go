package testutil

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for xredis.Client. Function fields
// override single operations when set.
type MockRedisClient struct {
	ExistFunc func(ctx context.Context, key string) (bool, error)
	GetFunc   func(ctx context.Context, key string) (string, error)
	SetFunc   func(ctx context.Context, key, value string) error
	DelFunc   func(ctx context.Context, key ...string) error

	values map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{values: map[string]string{}}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	_, ok := m.values[key]
	return ok, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}

	return value, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	m.values[key] = value
	return nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	for _, k := range key {
		delete(m.values, k)
	}

	return nil
}

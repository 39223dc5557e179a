package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: make(map[string]string)}
}

func (f *fakeLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeLockStore) Get(ctx context.Context, key string) (string, error) {
	value, exists := f.values[key]
	if !exists {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockAcquireReleaseRoundTrip(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "cron:test", time.Minute)
	if err != nil {
		t.Fatalf("construct lock: %v", err)
	}
	ctx := context.Background()

	held, err := lock.Acquire(ctx)
	if err != nil || !held {
		t.Fatalf("first acquire must succeed, held=%v err=%v", held, err)
	}

	other, err := NewRedisLock(store, "cron:test", time.Minute)
	if err != nil {
		t.Fatalf("construct second lock: %v", err)
	}
	held, err = other.Acquire(ctx)
	if err != nil || held {
		t.Fatalf("contended acquire must fail, held=%v err=%v", held, err)
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	held, err = other.Acquire(ctx)
	if err != nil || !held {
		t.Fatalf("acquire after release must succeed, held=%v err=%v", held, err)
	}
}

func TestRedisLockReleaseLeavesForeignTokenAlone(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "cron:test", time.Minute)
	if err != nil {
		t.Fatalf("construct lock: %v", err)
	}
	ctx := context.Background()

	if held, err := lock.Acquire(ctx); err != nil || !held {
		t.Fatalf("acquire: held=%v err=%v", held, err)
	}

	// Simulate TTL expiry followed by another worker grabbing the key.
	store.values["cron:test"] = "someone-else"

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release with foreign token: %v", err)
	}
	if store.values["cron:test"] != "someone-else" {
		t.Fatal("release must not delete a key it no longer owns")
	}
}

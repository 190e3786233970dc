package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "test:"), mr
}

func TestCacheHelper_RoundTrip(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	if err := helper.Set(ctx, UnreadCountCacheConfig, "user-1", int64(7)); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	var got int64
	if err := helper.Get(ctx, UnreadCountCacheConfig, "user-1", &got); err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}

func TestCacheHelper_Miss(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	var got int64
	err := helper.Get(ctx, UnreadCountCacheConfig, "nobody", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	if err := helper.Set(ctx, DoctorListCacheConfig, "all", []string{"a", "b"}); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := helper.Delete(ctx, DoctorListCacheConfig, "all"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	var got []string
	err := helper.Get(ctx, DoctorListCacheConfig, "all", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestCacheHelper_TTL(t *testing.T) {
	ctx := context.Background()
	helper, mr := newTestHelper(t)

	if err := helper.Set(ctx, UnreadCountCacheConfig, "user-1", int64(1)); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	mr.FastForward(UnreadCountCacheConfig.TTL + 1)

	var got int64
	err := helper.Get(ctx, UnreadCountCacheConfig, "user-1", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after TTL, got %v", err)
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "test:")

	var got int64
	if err := helper.Get(ctx, UnreadCountCacheConfig, "user-1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable on get, got %v", err)
	}
	if err := helper.Set(ctx, UnreadCountCacheConfig, "user-1", int64(1)); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable on set, got %v", err)
	}
	if err := helper.Delete(ctx, UnreadCountCacheConfig, "user-1"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable on delete, got %v", err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "test:"), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}

	in := payload{ID: 7, Title: "Go Basics"}
	if err := helper.Set(ctx, "course:7", in, time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	var out payload
	if err := helper.Get(ctx, "course:7", &out); err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if out != in {
		t.Errorf("Got %+v, want %+v", out, in)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestCache(t)

	var out map[string]interface{}
	err := helper.Get(context.Background(), "missing", &out)
	if err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_TTLExpiry(t *testing.T) {
	helper, mr := newTestCache(t)
	ctx := context.Background()

	if err := helper.SetString(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := helper.GetString(ctx, "k"); err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after expiry, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := helper.SetString(ctx, k, "v", time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := helper.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if _, err := helper.GetString(ctx, "a"); err != ErrCacheNotFound {
		t.Errorf("Key a should be gone, got %v", err)
	}
	if _, err := helper.GetString(ctx, "c"); err != nil {
		t.Errorf("Key c should survive, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	if err := helper.SetString(ctx, "course:1:stats", "x", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := helper.SetString(ctx, "course:1:list", "y", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := helper.SetString(ctx, "course:2:stats", "z", time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := helper.InvalidatePattern(ctx, "course:1*"); err != nil {
		t.Fatalf("Failed to invalidate: %v", err)
	}

	if _, err := helper.GetString(ctx, "course:1:stats"); err != ErrCacheNotFound {
		t.Errorf("course:1:stats should be invalidated, got %v", err)
	}
	if _, err := helper.GetString(ctx, "course:2:stats"); err != nil {
		t.Errorf("course:2:stats should survive, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	type aggregate struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	}

	// A miss runs the fetch and fills the destination.
	fetches := 0
	var out aggregate
	err := helper.CacheOrExecute(ctx, "student:7:course:10", &out, time.Minute, func() (interface{}, error) {
		fetches++
		return &aggregate{Total: 4, Completed: 2}, nil
	})
	if err != nil {
		t.Fatalf("Failed to execute: %v", err)
	}
	if fetches != 1 {
		t.Errorf("Expected 1 fetch, got %d", fetches)
	}
	if out.Total != 4 || out.Completed != 2 {
		t.Errorf("Got %+v, want {4 2}", out)
	}

	// A seeded key short-circuits the fetch.
	if err := helper.Set(ctx, "student:7:course:11", aggregate{Total: 3, Completed: 3}, time.Minute); err != nil {
		t.Fatal(err)
	}
	var hit aggregate
	err = helper.CacheOrExecute(ctx, "student:7:course:11", &hit, time.Minute, func() (interface{}, error) {
		t.Error("Fetch should not run on a cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Failed on cache hit: %v", err)
	}
	if hit.Completed != 3 {
		t.Errorf("Got %+v from cache, want {3 3}", hit)
	}

	// A per-student invalidation removes the cached aggregates.
	if err := helper.InvalidatePattern(ctx, "student:7:*"); err != nil {
		t.Fatalf("Failed to invalidate: %v", err)
	}
	var gone aggregate
	if err := helper.Get(ctx, "student:7:course:11", &gone); err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after invalidation, got %v", err)
	}
}

func TestCacheHelper_NilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "test:")
	ctx := context.Background()

	// Writes are silent no-ops without a client; reads report unavailability.
	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}

	var out string
	if err := helper.Get(ctx, "k", &out); err != ErrCacheNotAvailable {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheManager_HealthCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cm := NewCacheManager(client)
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Errorf("Health check failed: %v", err)
	}

	nilCM := NewCacheManager(nil)
	if err := nilCM.HealthCheck(context.Background()); err != ErrCacheNotAvailable {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestLocker(t *testing.T) (SlotLocker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSlotLocker(client, 5*time.Second), srv
}

func TestWithSlotLockRunsAndReleases(t *testing.T) {
	locker, srv := newTestLocker(t)
	key := SlotLockKey(uuid.New(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "09:00")

	ran := false
	err := locker.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		ran = true
		if !srv.Exists("lock:slot:" + key) {
			t.Error("lock key absent while holding the lock")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithSlotLock() error = %v", err)
	}
	if !ran {
		t.Fatal("fn was not called")
	}
	if srv.Exists("lock:slot:" + key) {
		t.Error("lock key still present after release")
	}
}

func TestWithSlotLockBusy(t *testing.T) {
	locker, srv := newTestLocker(t)
	key := SlotLockKey(uuid.New(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "09:00")

	if err := srv.Set("lock:slot:"+key, "someone-else"); err != nil {
		t.Fatal(err)
	}

	err := locker.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		t.Error("fn must not run when the lock is held")
		return nil
	})
	if !errors.Is(err, ErrSlotLockNotAcquired) {
		t.Fatalf("error = %v, want ErrSlotLockNotAcquired", err)
	}

	got, err := srv.Get("lock:slot:" + key)
	if err != nil || got != "someone-else" {
		t.Fatalf("foreign lock value = %q, %v; must be untouched", got, err)
	}
}

// A booking aborted by context cancellation must still free the lock instead
// of holding it until the TTL expires.
func TestWithSlotLockReleasesAfterCancellation(t *testing.T) {
	locker, srv := newTestLocker(t)
	key := SlotLockKey(uuid.New(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "09:00")

	ctx, cancel := context.WithCancel(context.Background())
	err := locker.WithSlotLock(ctx, key, func(fnCtx context.Context) error {
		cancel()
		return fnCtx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if srv.Exists("lock:slot:" + key) {
		t.Error("lock key still present after cancelled booking")
	}
}

func TestWithSlotLockNeverReleasesForeignToken(t *testing.T) {
	locker, srv := newTestLocker(t)
	key := SlotLockKey(uuid.New(), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "09:00")

	err := locker.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		// The lock expired mid-booking and a competitor re-acquired it.
		return srv.Set("lock:slot:"+key, "stolen")
	})
	if err != nil {
		t.Fatalf("WithSlotLock() error = %v", err)
	}

	got, err := srv.Get("lock:slot:" + key)
	if err != nil || got != "stolen" {
		t.Fatalf("competitor's lock = %q, %v; release must only delete its own token", got, err)
	}
}

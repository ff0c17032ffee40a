package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k", []string{"a", "b"}, 0); err != nil {
		t.Fatal(err)
	}

	var got []string
	hit, err := m.Get(ctx, "k", &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected value %v", got)
	}

	_ = m.Delete(ctx, "k")
	if hit, _ := m.Get(ctx, "k", &got); hit {
		t.Fatal("expected miss after delete")
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "k", 1, time.Minute)

	now = now.Add(2 * time.Minute)

	var got int
	if hit, _ := m.Get(ctx, "k", &got); hit {
		t.Fatal("expected expired entry to miss")
	}
}

func TestRemember_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	calls := 0

	load := func(context.Context) ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember(ctx, m, "nums", time.Minute, load)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 3 {
			t.Fatalf("unexpected value %v", got)
		}
	}

	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}

	Invalidate(ctx, m, "nums")
	_, _ = Remember(ctx, m, "nums", time.Minute, load)
	if calls != 2 {
		t.Fatalf("expected reload after invalidation, got %d loads", calls)
	}
}

func TestRemember_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("upstream down")

	_, err := Remember(ctx, m, "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	var v int
	if hit, _ := m.Get(ctx, "k", &v); hit {
		t.Fatal("failed load must not be cached")
	}
}

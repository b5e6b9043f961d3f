package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLimiter_RejectsSixthInWindow(t *testing.T) {
	l := NewMemoryLimiter(Policy{Window: 60 * time.Second, MaxRequests: 5})
	now := time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ok, err := l.Admit(context.Background(), "caller-1", now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("admit %d: expected admission", i)
		}
	}

	ok, err := l.Admit(context.Background(), "caller-1", now.Add(5*time.Second))
	if err != nil {
		t.Fatalf("sixth admit: %v", err)
	}
	if ok {
		t.Fatalf("sixth request inside the window should be rejected")
	}
}

func TestMemoryLimiter_ReadmitsAfterWindowElapses(t *testing.T) {
	l := NewMemoryLimiter(Policy{Window: 60 * time.Second, MaxRequests: 5})
	now := time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if ok, _ := l.Admit(context.Background(), "caller-1", now); !ok {
			t.Fatalf("admit %d: expected admission", i)
		}
	}
	if ok, _ := l.Admit(context.Background(), "caller-1", now.Add(30*time.Second)); ok {
		t.Fatalf("expected rejection mid-window")
	}

	// The original five stamps fall out once the window fully elapses.
	later := now.Add(61 * time.Second)
	ok, err := l.Admit(context.Background(), "caller-1", later)
	if err != nil {
		t.Fatalf("admit after window: %v", err)
	}
	if !ok {
		t.Fatalf("expected readmission after the window elapsed")
	}
}

func TestMemoryLimiter_RejectionIsNotRecorded(t *testing.T) {
	l := NewMemoryLimiter(Policy{Window: 60 * time.Second, MaxRequests: 1})
	now := time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC)

	if ok, _ := l.Admit(context.Background(), "caller-1", now); !ok {
		t.Fatalf("expected first admission")
	}
	// Hammer rejections; none of them should extend the window.
	for i := 0; i < 10; i++ {
		if ok, _ := l.Admit(context.Background(), "caller-1", now.Add(time.Duration(i)*time.Second)); ok {
			t.Fatalf("expected rejection at +%ds", i)
		}
	}
	if ok, _ := l.Admit(context.Background(), "caller-1", now.Add(61*time.Second)); !ok {
		t.Fatalf("rejections must not have refreshed the window")
	}
}

func TestMemoryLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(Policy{Window: 60 * time.Second, MaxRequests: 1})
	now := time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC)

	if ok, _ := l.Admit(context.Background(), "caller-1", now); !ok {
		t.Fatalf("caller-1 should be admitted")
	}
	if ok, _ := l.Admit(context.Background(), "caller-2", now); !ok {
		t.Fatalf("caller-2 should not be affected by caller-1's window")
	}
}

func TestMemoryLimiter_ConcurrentBurstNeverOveradmits(t *testing.T) {
	l := NewMemoryLimiter(Policy{Window: 60 * time.Second, MaxRequests: 5})
	now := time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.Admit(context.Background(), "caller-1", now)
			if err != nil {
				t.Errorf("admit: %v", err)
				return
			}
			if ok {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 5 {
		t.Fatalf("expected exactly 5 admissions from the burst, got %d", admitted)
	}
}

func TestMemoryLimiter_RequiresClientID(t *testing.T) {
	l := NewMemoryLimiter(Policy{})
	if _, err := l.Admit(context.Background(), "", time.Now()); err == nil {
		t.Fatalf("expected error for empty client id")
	}
}

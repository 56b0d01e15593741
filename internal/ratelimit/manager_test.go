package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	m, err := NewManager("redis://"+mr.Addr(), 3, 5)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestCheckSubmission_MinuteWindow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := m.CheckSubmission(ctx, "user-1")
		if err != nil {
			t.Fatalf("CheckSubmission failed: %v", err)
		}
		if !allowed {
			t.Fatalf("Expected submission %d allowed", i+1)
		}
	}

	allowed, resetSec, err := m.CheckSubmission(ctx, "user-1")
	if err != nil {
		t.Fatalf("CheckSubmission failed: %v", err)
	}
	if allowed {
		t.Error("Expected fourth submission in the same minute to be blocked")
	}
	if resetSec < 1 || resetSec > 60 {
		t.Errorf("Expected reset within the minute, got %d", resetSec)
	}
}

func TestCheckSubmission_PerReporter(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := m.CheckSubmission(ctx, "user-1"); err != nil {
			t.Fatalf("CheckSubmission failed: %v", err)
		}
	}

	// A different reporter has their own bucket
	allowed, _, err := m.CheckSubmission(ctx, "user-2")
	if err != nil {
		t.Fatalf("CheckSubmission failed: %v", err)
	}
	if !allowed {
		t.Error("Expected other reporter to be allowed")
	}
}

func TestCheckSubmission_RejectedRequestDoesNotBurnQuota(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.CheckSubmission(ctx, "user-1")
	}
	// Blocked attempts should not grow the daily counter
	m.CheckSubmission(ctx, "user-1")
	m.CheckSubmission(ctx, "user-1")

	count, err := m.SubmissionsToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("SubmissionsToday failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 counted submissions, got %d", count)
	}
}

func TestSubmissionsToday_Empty(t *testing.T) {
	m := newTestManager(t)

	count, err := m.SubmissionsToday(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("SubmissionsToday failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0, got %d", count)
	}
}

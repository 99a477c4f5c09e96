package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/models"
)

func TestWaitForApprovalResolvesWhenStatusChanges(t *testing.T) {
	checks := 0
	poller := NewPoller(time.Millisecond, func(ctx context.Context) (*models.User, error) {
		checks++
		if checks < 3 {
			return &models.User{ID: "u1", Status: models.UserStatusPending}, nil
		}
		return &models.User{ID: "u1", Status: models.UserStatusActive}, nil
	})

	user, err := poller.WaitForApproval(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Status != models.UserStatusActive {
		t.Fatalf("expected active user, got %q", user.Status)
	}
	if checks != 3 {
		t.Fatalf("expected 3 checks, got %d", checks)
	}
}

func TestWaitForApprovalStopsOnUnauthorized(t *testing.T) {
	poller := NewPoller(time.Millisecond, func(ctx context.Context) (*models.User, error) {
		return nil, apperrors.NewGenericAPIError(http.StatusUnauthorized)
	})

	_, err := poller.WaitForApproval(context.Background())
	if !apperrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestWaitForApprovalRetriesTransientFailures(t *testing.T) {
	checks := 0
	poller := NewPoller(time.Millisecond, func(ctx context.Context) (*models.User, error) {
		checks++
		if checks == 1 {
			return nil, errors.New("temporary network failure")
		}
		return &models.User{ID: "u1", Status: models.UserStatusActive}, nil
	})

	user, err := poller.WaitForApproval(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestWaitForApprovalHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPoller(time.Hour, func(ctx context.Context) (*models.User, error) {
		return &models.User{Status: models.UserStatusPending}, nil
	})

	// The first token is available immediately; cancel before the second
	// wait can complete.
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := poller.WaitForApproval(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

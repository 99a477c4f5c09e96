package session

import (
	"testing"

	"github.com/tyulyukov/veracity-go/models"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	if s.IsAuthenticated() {
		t.Fatal("new store must not report a session")
	}
	if _, ok := s.User(); ok {
		t.Fatal("new store must not hold a user")
	}
	if _, ok := s.Status(); ok {
		t.Fatal("new store must not report a status")
	}

	s.SetUser(models.User{ID: "u1", Status: models.UserStatusPending})

	if !s.IsAuthenticated() {
		t.Fatal("expected a session after SetUser")
	}
	user, ok := s.User()
	if !ok || user.ID != "u1" {
		t.Fatalf("unexpected user %+v %v", user, ok)
	}
	status, ok := s.Status()
	if !ok || status != models.UserStatusPending {
		t.Fatalf("unexpected status %q %v", status, ok)
	}

	// A later session check replaces the held user.
	s.SetUser(models.User{ID: "u1", Status: models.UserStatusActive})
	if status, _ := s.Status(); status != models.UserStatusActive {
		t.Fatalf("expected status to follow the latest check, got %q", status)
	}

	s.Clear()
	if s.IsAuthenticated() {
		t.Fatal("expected no session after Clear")
	}
}

func TestStoreUserReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetUser(models.User{ID: "u1", FirstName: "Ada"})

	user, _ := s.User()
	user.FirstName = "changed"

	held, _ := s.User()
	if held.FirstName != "Ada" {
		t.Fatal("mutating the returned user must not affect the store")
	}
}

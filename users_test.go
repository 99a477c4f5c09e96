package veracity

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/pagination"
	"github.com/tyulyukov/veracity-go/session"
)

func member(id string) models.OtherUser {
	return models.OtherUser{
		ID:        id,
		FirstName: "Member",
		LastName:  id,
		Status:    models.UserStatusActive,
	}
}

func TestListEncodesDirectoryFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q["interestIds"]; len(got) != 2 || got[0] != "i1" || got[1] != "i2" {
			t.Errorf("unexpected interestIds %v", got)
		}
		if q.Get("search") != "ada" {
			t.Errorf("unexpected search %q", q.Get("search"))
		}
		if q.Get("connectionFilter") != "connected" {
			t.Errorf("unexpected connectionFilter %q", q.Get("connectionFilter"))
		}
		if q.Get("limit") != "20" {
			t.Errorf("unexpected limit %q", q.Get("limit"))
		}
		json.NewEncoder(w).Encode(models.PaginatedUsersResponse{Users: []models.OtherUser{member("m1")}})
	})

	svc := NewUserService(newTestTransport(t, mux), cache.NewStore(), session.NewStore(), nopLogger())

	page, err := svc.List(context.Background(), models.UsersQuery{
		InterestIDs:      []string{"i1", "i2"},
		Search:           "ada",
		ConnectionFilter: models.ConnectionFilterConnected,
	}, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Users) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestListOmitsAllConnectionFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("connectionFilter") {
			t.Error("the all filter must not be sent")
		}
		json.NewEncoder(w).Encode(models.PaginatedUsersResponse{})
	})

	svc := NewUserService(newTestTransport(t, mux), cache.NewStore(), session.NewStore(), nopLogger())
	_, err := svc.List(context.Background(), models.UsersQuery{ConnectionFilter: models.ConnectionFilterAll}, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDifferentQueriesCacheIndependently(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PaginatedUsersResponse{Users: []models.OtherUser{member("m1")}})
	})

	store := cache.NewStore()
	svc := NewUserService(newTestTransport(t, mux), store, session.NewStore(), nopLogger())

	ctx := context.Background()
	if _, err := svc.List(ctx, models.UsersQuery{Search: "ada"}, pagination.Params{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, models.UsersQuery{Search: "grace"}, pagination.Params{}); err != nil {
		t.Fatal(err)
	}

	if got := len(store.KeysWithPrefix("users/list")); got != 2 {
		t.Fatalf("expected one cache entry per query, got %d", got)
	}
}

func TestUpdateMeRefreshesSessionAndInvalidatesListings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PaginatedUsersResponse{})
	})
	mux.HandleFunc("PATCH /users/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(currentUser(models.UserStatusActive))
	})

	store := cache.NewStore()
	sessionStore := session.NewStore()
	svc := NewUserService(newTestTransport(t, mux), store, sessionStore, nopLogger())

	ctx := context.Background()
	if _, err := svc.List(ctx, models.UsersQuery{}, pagination.Params{}); err != nil {
		t.Fatal(err)
	}

	position := "Engineer"
	if _, err := svc.UpdateMe(ctx, models.UpdateProfilePayload{Position: &position}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sessionStore.IsAuthenticated() {
		t.Fatal("expected the session store to hold the updated profile")
	}
	for _, key := range store.KeysWithPrefix("users") {
		if !store.IsStale(key) {
			t.Fatalf("listing %s not marked stale after a profile edit", key)
		}
	}
}

func TestPendingRequestsQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("connectionFilter") != "received_requests" {
			t.Errorf("unexpected connectionFilter %q", q.Get("connectionFilter"))
		}
		if q.Get("limit") != "50" {
			t.Errorf("unexpected limit %q", q.Get("limit"))
		}
		json.NewEncoder(w).Encode(models.PaginatedUsersResponse{Users: []models.OtherUser{member("m1")}})
	})

	store := cache.NewStore()
	svc := NewUserService(newTestTransport(t, mux), store, session.NewStore(), nopLogger())

	page, err := svc.PendingRequests(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Users) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if _, ok := store.Get("pending-requests"); !ok {
		t.Fatal("expected the pending requests to be cached")
	}
}

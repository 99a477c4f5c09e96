package veracity

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tyulyukov/veracity-go/models"
)

func TestUploadDelegatesMultipart(t *testing.T) {
	svc := NewStorageService(newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storage/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("entity"); got != "posts" {
			t.Errorf("unexpected entity %q", got)
		}
		if got := r.FormValue("field"); got != "post_image" {
			t.Errorf("unexpected field %q", got)
		}
		w.Write([]byte(`{"path":"/posts/p1/image.png"}`))
	})), "https://storage.example.com", nopLogger())

	var reports []int
	path, err := svc.Upload(context.Background(), UploadRequest{
		File:     strings.NewReader("image-bytes"),
		FileName: "image.png",
		Entity:   models.StorageEntityPosts,
		EntityID: "p1",
		Field:    models.StorageFieldPostImage,
		OnProgress: func(percent int) {
			reports = append(reports, percent)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/posts/p1/image.png" {
		t.Fatalf("unexpected path %q", path)
	}
	if len(reports) == 0 || reports[len(reports)-1] != 100 {
		t.Fatalf("expected progress ending at 100, got %v", reports)
	}
}

func TestResolveURL(t *testing.T) {
	svc := NewStorageService(nil, "https://storage.example.com/", nopLogger())

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/users/u1/avatar.png", "https://storage.example.com/users/u1/avatar.png"},
		{"users/u1/avatar.png", "https://storage.example.com/users/u1/avatar.png"},
		{"https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"http://cdn.example.com/x.png", "http://cdn.example.com/x.png"},
	}
	for _, tc := range cases {
		if got := svc.ResolveURL(tc.in); got != tc.want {
			t.Errorf("ResolveURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

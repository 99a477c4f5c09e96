package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/tyulyukov/veracity-go/apperrors"
)

func uploadRequest() UploadRequest {
	return UploadRequest{
		File:     bytes.NewReader(bytes.Repeat([]byte("x"), 64<<10)),
		FileName: "avatar.png",
		Entity:   "users",
		EntityID: "42",
		Field:    "avatar",
	}
}

func TestUploadSendsMultipartParts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storage/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("entity"); got != "users" {
			t.Errorf("unexpected entity %q", got)
		}
		if got := r.FormValue("entityId"); got != "42" {
			t.Errorf("unexpected entityId %q", got)
		}
		if got := r.FormValue("field"); got != "avatar" {
			t.Errorf("unexpected field %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "avatar.png" {
			t.Errorf("unexpected file name %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if len(content) != 64<<10 {
			t.Errorf("unexpected file size %d", len(content))
		}

		w.Write([]byte(`{"path":"/users/42/avatar.png"}`))
	}))

	path, err := client.Upload(context.Background(), uploadRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/users/42/avatar.png" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestUploadProgressEndsAtHundredOnSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"path":"/p"}`))
	}))

	var reports []int
	_, err := client.Upload(context.Background(), uploadRequest(), func(percent int) {
		reports = append(reports, percent)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports) == 0 {
		t.Fatal("expected progress reports")
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Fatalf("progress decreased: %v", reports)
		}
	}
	if last := reports[len(reports)-1]; last != 100 {
		t.Fatalf("expected final report of 100, got %d", last)
	}
	// 100 appears exactly once, as the acceptance signal.
	for _, p := range reports[:len(reports)-1] {
		if p == 100 {
			t.Fatalf("100 reported before acceptance: %v", reports)
		}
	}
}

func TestUploadNoHundredOnFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"message":"File too large","error":"PayloadTooLarge","statusCode":413}`))
	}))

	var reports []int
	_, err := client.Upload(context.Background(), uploadRequest(), func(percent int) {
		reports = append(reports, percent)
	})

	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "File too large" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	for _, p := range reports {
		if p >= 100 {
			t.Fatalf("100 reported despite rejection: %v", reports)
		}
	}
}

func TestUploadUnauthorizedFiresHook(t *testing.T) {
	fired := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { fired++ }))

	if _, err := client.Upload(context.Background(), uploadRequest(), nil); err == nil {
		t.Fatal("expected an error")
	}
	if fired != 1 {
		t.Fatalf("expected hook to fire once, fired %d times", fired)
	}
}

package validation

import (
	"errors"
	"testing"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/models"
)

func validRegisterPayload() models.RegisterPayload {
	return models.RegisterPayload{
		Email:       "ada@example.com",
		Password:    "correct-horse",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		InterestIDs: []string{"i1"},
	}
}

func assertValidationMessage(t *testing.T, err error, field, message string) {
	t.Helper()
	var vErr *apperrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != field {
		t.Errorf("expected field %q, got %q", field, vErr.Field)
	}
	if vErr.Message != message {
		t.Errorf("expected message %q, got %q", message, vErr.Message)
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Error("ValidationError must unwrap to ErrValidationFailed")
	}
}

func TestValidateRegisterAccepted(t *testing.T) {
	if err := ValidateRegister(validRegisterPayload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRegisterRequiresInterests(t *testing.T) {
	payload := validRegisterPayload()
	payload.InterestIDs = nil

	err := ValidateRegister(payload)
	assertValidationMessage(t, err, "interestIds", "Select at least one interest")
}

func TestValidateRegisterRejectsBadEmail(t *testing.T) {
	payload := validRegisterPayload()
	payload.Email = "not-an-email"

	err := ValidateRegister(payload)
	assertValidationMessage(t, err, "email", "Enter a valid email address")
}

func TestValidateRegisterRejectsShortPassword(t *testing.T) {
	payload := validRegisterPayload()
	payload.Password = "short"

	var vErr *apperrors.ValidationError
	if !errors.As(ValidateRegister(payload), &vErr) {
		t.Fatal("expected ValidationError")
	}
	if vErr.Field != "password" {
		t.Fatalf("expected password field, got %q", vErr.Field)
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin(models.LoginPayload{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateLogin(models.LoginPayload{Email: "ada@example.com"}); err == nil {
		t.Fatal("expected missing password to fail")
	}
}

func TestValidateCreatePostRequiresContent(t *testing.T) {
	err := ValidateCreatePost(models.CreatePostPayload{Text: "   "})
	assertValidationMessage(t, err, "text", "Post must have text or images")
}

func TestValidateCreatePostImagesAlone(t *testing.T) {
	err := ValidateCreatePost(models.CreatePostPayload{ImageURLs: []string{"/img/1.png"}})
	if err != nil {
		t.Fatalf("image-only post must pass, got %v", err)
	}
}

func TestValidateCreatePostImageLimit(t *testing.T) {
	err := ValidateCreatePost(models.CreatePostPayload{
		Text:      "five images",
		ImageURLs: []string{"1", "2", "3", "4", "5"},
	})
	assertValidationMessage(t, err, "imageUrls", "Maximum 4 images allowed")
}

func TestValidateUpdatePost(t *testing.T) {
	empty := "  "
	err := ValidateUpdatePost(models.UpdatePostPayload{Text: &empty})
	assertValidationMessage(t, err, "text", "Post must have text or images")

	text := "edited"
	if err := ValidateUpdatePost(models.UpdatePostPayload{Text: &text}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func validEventPayload() models.CreateEventPayload {
	return models.CreateEventPayload{
		Name:      "Monthly meetup",
		EventDate: "2026-10-01T18:00:00Z",
		Location:  "Community Hall",
	}
}

func TestValidateCreateEventAccepted(t *testing.T) {
	if err := ValidateCreateEvent(validEventPayload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCreateEventRequiredFields(t *testing.T) {
	payload := validEventPayload()
	payload.Name = " "
	assertValidationMessage(t, ValidateCreateEvent(payload), "name", "Event name is required")

	payload = validEventPayload()
	payload.EventDate = ""
	assertValidationMessage(t, ValidateCreateEvent(payload), "eventDate", "Event date and time are required")
}

func TestValidateCreateEventLocationRules(t *testing.T) {
	// In-person events need a location.
	payload := validEventPayload()
	payload.Location = ""
	assertValidationMessage(t, ValidateCreateEvent(payload), "location", "Location is required for in-person events")

	// Online events need a link instead.
	payload = validEventPayload()
	payload.IsOnline = true
	payload.Location = ""
	assertValidationMessage(t, ValidateCreateEvent(payload), "link", "Event link is required for online events")

	payload.Link = "https://meet.example.com/x"
	if err := ValidateCreateEvent(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCreateEventParticipantLimit(t *testing.T) {
	zero := 0
	payload := validEventPayload()
	payload.LimitParticipants = &zero
	assertValidationMessage(t, ValidateCreateEvent(payload), "limitParticipants", "Participant limit must be at least 1")
}

func TestValidateEventLimit(t *testing.T) {
	if err := ValidateEventLimit(nil, 10); err != nil {
		t.Fatalf("nil limit must pass, got %v", err)
	}

	ten := 10
	if err := ValidateEventLimit(&ten, 10); err != nil {
		t.Fatalf("limit equal to count must pass, got %v", err)
	}

	five := 5
	err := ValidateEventLimit(&five, 8)
	assertValidationMessage(t, err, "limitParticipants", "Participant limit cannot be less than current participant count (8)")
}

func TestValidateComment(t *testing.T) {
	assertValidationMessage(t, ValidateComment("  "), "text", "Comment cannot be empty")
	if err := ValidateComment("nice event"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateConnectionResponse(t *testing.T) {
	if err := ValidateConnectionResponse(models.RespondToConnectionPayload{Response: models.ConnectionApprove}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateConnectionResponse(models.RespondToConnectionPayload{Response: "maybe"}); err == nil {
		t.Fatal("expected unknown response action to fail")
	}
}

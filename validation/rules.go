// Package validation holds the client-side checks applied before any
// request is issued. A failed check surfaces immediately as an
// apperrors.ValidationError and nothing reaches the network.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/models"
)

// validate caches a single validator instance; payload structs carry their
// rules as struct tags
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRegister checks a registration payload
func ValidateRegister(payload models.RegisterPayload) error {
	// Interests drive member matching and are required up front
	if len(payload.InterestIDs) == 0 {
		return apperrors.NewValidationError("interestIds", "Select at least one interest")
	}

	if err := validate.Struct(payload); err != nil {
		return translate(err)
	}

	return nil
}

// ValidateLogin checks a login payload
func ValidateLogin(payload models.LoginPayload) error {
	if err := validate.Struct(payload); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateUpdateProfile checks a profile update payload
func ValidateUpdateProfile(payload models.UpdateProfilePayload) error {
	if err := validate.Struct(payload); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateCreatePost checks a new post. A post must carry non-empty text
// or at least one image, and never more than MaxPostImages images.
func ValidateCreatePost(payload models.CreatePostPayload) error {
	if strings.TrimSpace(payload.Text) == "" && len(payload.ImageURLs) == 0 {
		return apperrors.NewValidationError("text", "Post must have text or images")
	}
	if len(payload.ImageURLs) > models.MaxPostImages {
		return apperrors.NewValidationError("imageUrls", fmt.Sprintf("Maximum %d images allowed", models.MaxPostImages))
	}
	return nil
}

// ValidateUpdatePost checks a post edit against the same content rules as
// creation
func ValidateUpdatePost(payload models.UpdatePostPayload) error {
	if payload.Text != nil && strings.TrimSpace(*payload.Text) == "" && len(payload.ImageURLs) == 0 {
		return apperrors.NewValidationError("text", "Post must have text or images")
	}
	if len(payload.ImageURLs) > models.MaxPostImages {
		return apperrors.NewValidationError("imageUrls", fmt.Sprintf("Maximum %d images allowed", models.MaxPostImages))
	}
	return nil
}

// ValidateCreateEvent checks a new event
func ValidateCreateEvent(payload models.CreateEventPayload) error {
	if strings.TrimSpace(payload.Name) == "" {
		return apperrors.NewValidationError("name", "Event name is required")
	}
	if strings.TrimSpace(payload.EventDate) == "" {
		return apperrors.NewValidationError("eventDate", "Event date and time are required")
	}
	if !payload.IsOnline && strings.TrimSpace(payload.Location) == "" {
		return apperrors.NewValidationError("location", "Location is required for in-person events")
	}
	if payload.IsOnline && strings.TrimSpace(payload.Link) == "" {
		return apperrors.NewValidationError("link", "Event link is required for online events")
	}
	if payload.LimitParticipants != nil && *payload.LimitParticipants < 1 {
		return apperrors.NewValidationError("limitParticipants", "Participant limit must be at least 1")
	}
	if err := validate.Struct(payload); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateEventLimit checks an edited participant limit against the
// event's known participant count. The server enforces the same invariant;
// the client rejects early so no request is sent.
func ValidateEventLimit(limit *int, participantCount int) error {
	if limit == nil {
		return nil
	}
	if *limit < 1 {
		return apperrors.NewValidationError("limitParticipants", "Participant limit must be at least 1")
	}
	if *limit < participantCount {
		return apperrors.NewValidationError(
			"limitParticipants",
			fmt.Sprintf("Participant limit cannot be less than current participant count (%d)", participantCount),
		)
	}
	return nil
}

// ValidateComment checks a comment body
func ValidateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.NewValidationError("text", "Comment cannot be empty")
	}
	return nil
}

// ValidateConnectionResponse checks the decision on an incoming request
func ValidateConnectionResponse(payload models.RespondToConnectionPayload) error {
	if err := validate.Struct(payload); err != nil {
		return translate(err)
	}
	return nil
}

// translate converts validator errors into a single displayable
// ValidationError for the first failing field
func translate(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return apperrors.NewValidationError("", "Validation failed")
	}

	fe := validationErrs[0]
	field := fieldName(fe)

	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(field, fmt.Sprintf("%s is required", field))
	case "email":
		return apperrors.NewValidationError(field, "Enter a valid email address")
	case "min":
		if fe.Kind().String() == "string" {
			return apperrors.NewValidationError(field, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		}
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must have at least %s entries", field, fe.Param()))
	case "max":
		if fe.Kind().String() == "string" {
			return apperrors.NewValidationError(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		}
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must have at most %s entries", field, fe.Param()))
	case "oneof":
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	default:
		return apperrors.NewValidationError(field, fmt.Sprintf("%s is invalid", field))
	}
}

// fieldName lower-cases the first rune to match the wire naming
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

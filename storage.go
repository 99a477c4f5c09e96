package veracity

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/transport"
)

// UploadRequest describes one file upload
type UploadRequest struct {
	// File is the binary content
	File io.Reader
	// FileName is the original file name
	FileName string
	// Entity is the owning entity type
	Entity models.StorageEntity
	// EntityID is the owning entity's ID
	EntityID string
	// Field is the destination field
	Field models.StorageField
	// OnProgress, when set, receives the upload percentage
	OnProgress transport.ProgressFunc
}

// StorageService uploads media and resolves stored paths to full URLs
type StorageService interface {
	// Upload performs a single multipart upload with progress reporting
	// and returns the server-assigned storage path. There is no retry.
	Upload(ctx context.Context, req UploadRequest) (string, error)
	// ResolveURL prefixes a stored path with the storage origin; absolute
	// URLs pass through unchanged
	ResolveURL(path string) string
}

// storageServiceImpl implements StorageService
type storageServiceImpl struct {
	transport      *transport.Client
	storageBaseURL string
	logger         zerolog.Logger
}

// NewStorageService creates a new StorageService
func NewStorageService(tc *transport.Client, storageBaseURL string, logger zerolog.Logger) StorageService {
	return &storageServiceImpl{
		transport:      tc,
		storageBaseURL: strings.TrimRight(storageBaseURL, "/"),
		logger:         logger,
	}
}

// Upload performs the multipart upload. Each upload gets an ephemeral
// correlation token, the only kind of ID the client ever generates, so
// parallel uploads stay distinguishable in logs and progress handling.
func (s *storageServiceImpl) Upload(ctx context.Context, req UploadRequest) (string, error) {
	uploadID := uuid.NewString()

	s.logger.Debug().
		Str("uploadId", uploadID).
		Str("entity", string(req.Entity)).
		Str("entityId", req.EntityID).
		Str("field", string(req.Field)).
		Str("fileName", req.FileName).
		Msg("Starting upload")

	path, err := s.transport.Upload(ctx, transport.UploadRequest{
		File:     req.File,
		FileName: req.FileName,
		Entity:   string(req.Entity),
		EntityID: req.EntityID,
		Field:    string(req.Field),
	}, req.OnProgress)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("uploadId", uploadID).
			Msg("Upload failed")
		return "", err
	}

	s.logger.Debug().
		Str("uploadId", uploadID).
		Str("path", path).
		Msg("Upload completed")
	return path, nil
}

// ResolveURL resolves a stored path against the storage origin
func (s *storageServiceImpl) ResolveURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.storageBaseURL + "/" + strings.TrimPrefix(path, "/")
}

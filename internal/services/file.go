package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Feaman/interview-server/internal/validate"
	"github.com/Feaman/interview-server/types"
)

const (
	channelFileUploaded = "file.uploaded"
	channelFileRemoved  = "file.removed"
)

// FileRepository defines persistence operations for uploaded file
// records. All operations are scoped by the owning user id.
type FileRepository interface {
	List(ctx context.Context, userID int) ([]types.File, error)
	GetByID(ctx context.Context, id, userID int) (types.File, error)
	Create(ctx context.Context, file types.File, userID int) (types.File, error)
	Update(ctx context.Context, file types.File, userID int) (types.File, error)
	Delete(ctx context.Context, id, userID int) error
}

// FileService encapsulates uploaded-file use-cases. Storing the file
// contents is the upload collaborator's job; this service records the
// metadata and owns removal of the stored object.
type FileService struct {
	repo      FileRepository
	storage   ObjectDeleter
	publisher EventPublisher
	logger    *slog.Logger
}

func NewFileService(repo FileRepository, storage ObjectDeleter, publisher EventPublisher, logger *slog.Logger) *FileService {
	return &FileService{repo: repo, storage: storage, publisher: publisher, logger: logger}
}

// List returns the owner's files, newest first.
func (s *FileService) List(ctx context.Context, userID int) ([]types.File, error) {
	return s.repo.List(ctx, userID)
}

// GetByID loads one file record scoped by owner.
func (s *FileService) GetByID(ctx context.Context, id, userID int) (types.File, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Create validates and inserts a file record built from an upload
// descriptor. Size and MIME type are persisted as supplied; the stored
// path comes from the upload collaborator's collision-resistant naming.
func (s *FileService) Create(ctx context.Context, file types.File, userID int) (types.File, error) {
	if err := validate.Struct("file", file); err != nil {
		return types.File{}, err
	}

	created, err := s.repo.Create(ctx, file, userID)
	if err != nil {
		return types.File{}, err
	}

	s.notify(ctx, channelFileUploaded, created, userID)
	return created, nil
}

// Update rewrites the mutable fields of an existing file record.
func (s *FileService) Update(ctx context.Context, id int, incoming types.File, userID int) (types.File, error) {
	file, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.File{}, err
	}

	file.Name = incoming.Name
	if incoming.Path != "" && incoming.Path != file.Path {
		// A fresh upload replaces the stored object.
		deleteObject(ctx, s.storage, s.logger, file.Path)
		file.OriginalName = incoming.OriginalName
		file.MimeType = incoming.MimeType
		file.Size = incoming.Size
		file.Path = incoming.Path
	}

	if err := validate.Struct("file", file); err != nil {
		return types.File{}, err
	}
	return s.repo.Update(ctx, file, userID)
}

// Remove deletes a file record scoped by owner and returns the removed
// record. The stored object is removed best-effort after the row deletion.
func (s *FileService) Remove(ctx context.Context, id, userID int) (types.File, error) {
	file, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.File{}, err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return types.File{}, err
	}

	deleteObject(ctx, s.storage, s.logger, file.Path)
	s.notify(ctx, channelFileRemoved, file, userID)
	return file, nil
}

// notify publishes a broker notification best-effort. Downstream
// consumers (e.g. thumbnailers) pick these up; failures never affect
// the entity mutation.
func (s *FileService) notify(ctx context.Context, channel string, file types.File, userID int) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"userId":   userID,
		"fileId":   file.ID,
		"path":     file.Path,
		"mimeType": file.MimeType,
	})
	if err != nil {
		return
	}

	if _, err := s.publisher.Publish(ctx, channel, payload, nil); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to publish file event", "channel", channel, "error", err)
		}
	}
}

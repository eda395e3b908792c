package services

import (
	"context"
	"log/slog"
)

// ObjectDeleter removes stored objects (photos, uploaded file contents).
// Implemented by the storage layer.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// EventPublisher sends best-effort notifications about storage side
// effects to a message broker. Implemented by the events layer.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// deleteObject removes a stored object best-effort. Cleanup is advisory,
// not transactional: failures are logged and never propagated, so they
// cannot fail an otherwise-successful entity mutation.
func deleteObject(ctx context.Context, storage ObjectDeleter, logger *slog.Logger, key string) {
	if storage == nil || key == "" {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		if logger != nil {
			logger.Warn("failed to delete stored object", "key", key, "error", err)
		}
	}
}

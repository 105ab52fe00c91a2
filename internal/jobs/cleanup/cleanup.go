package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type PhotoStore interface {
	ListDeletedListingPhotos(ctx context.Context, cutoff time.Time) ([]model.ListingPhoto, error)
	DeletePhoto(ctx context.Context, photoID uuid.UUID) error
}

type ObjectDeleter interface {
	Delete(ctx context.Context, objectKey string) error
}

// Job purges photo objects and metadata left behind by deleted listings.
type Job struct {
	mediaRepo PhotoStore
	storage   ObjectDeleter
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(mediaRepo PhotoStore, storage ObjectDeleter, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		mediaRepo: mediaRepo,
		storage:   storage,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.mediaRepo == nil || j.storage == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	photos, err := j.mediaRepo.ListDeletedListingPhotos(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list stale listing photos: %w", err)
	}

	if len(photos) == 0 {
		return nil
	}

	for _, photo := range photos {
		if err := j.storage.Delete(ctx, photo.ObjectKey); err != nil {
			j.logger.Warn("failed to delete photo object from storage", zap.Error(err), zap.String("object_key", photo.ObjectKey))
		}
		if err := j.mediaRepo.DeletePhoto(ctx, photo.ID); err != nil {
			return fmt.Errorf("delete listing photo record: %w", err)
		}
	}

	j.logger.Info("cleanup stale listing photos completed", zap.Int("deleted", len(photos)))
	return nil
}

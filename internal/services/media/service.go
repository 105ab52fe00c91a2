package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrListingNotFound      = errors.New("listing not found")
	ErrUnsupportedPhotoType = errors.New("unsupported photo content type")
)

const signedURLTTL = 5 * time.Minute

type Store interface {
	CreateListingPhoto(ctx context.Context, listingID uuid.UUID, objectKey string, isPrimary bool, now time.Time) (model.ListingPhoto, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]model.ListingPhoto, error)
}

type ListingStore interface {
	GetByID(ctx context.Context, listingID uuid.UUID) (model.Listing, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Photo struct {
	ID         uuid.UUID
	ListingID  uuid.UUID
	URL        string
	IsPrimary  bool
	UploadedAt time.Time
}

type Service struct {
	store    Store
	listings ListingStore
	storage  ObjectStorage
	now      func() time.Time
}

func NewService(store Store, listings ListingStore, storage ObjectStorage) *Service {
	return &Service{
		store:    store,
		listings: listings,
		storage:  storage,
		now:      time.Now,
	}
}

// UploadListingPhoto stores the photo bytes and its metadata row. Only the
// listing's host can attach photos.
func (s *Service) UploadListingPhoto(ctx context.Context, hostID, listingID uuid.UUID, fileName, contentType string, body io.Reader, size int64, isPrimary bool) (Photo, error) {
	if hostID == uuid.Nil || listingID == uuid.Nil || body == nil || size <= 0 {
		return Photo{}, ErrValidation
	}
	if s.store == nil || s.listings == nil || s.storage == nil {
		return Photo{}, fmt.Errorf("media dependencies are not configured")
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return Photo{}, ErrListingNotFound
		}
		return Photo{}, err
	}
	if listing.HostID != hostID {
		return Photo{}, ErrListingNotFound
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Photo{}, fmt.Errorf("ensure bucket: %w", err)
	}

	if !AllowedPhotoContentType(contentType) {
		return Photo{}, ErrUnsupportedPhotoType
	}

	objectKey, err := photoObjectKey(listingID, fileName)
	if err != nil {
		return Photo{}, fmt.Errorf("build object key: %w", err)
	}

	if err := s.storage.PutPhoto(ctx, objectKey, body, size, contentType); err != nil {
		return Photo{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.CreateListingPhoto(ctx, listingID, objectKey, isPrimary, s.now().UTC())
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Photo{}, fmt.Errorf("create photo record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Photo{}, fmt.Errorf("presign photo url: %w", err)
	}

	return Photo{
		ID:         record.ID,
		ListingID:  record.ListingID,
		URL:        url,
		IsPrimary:  record.IsPrimary,
		UploadedAt: record.UploadedAt,
	}, nil
}

func (s *Service) ListListingPhotos(ctx context.Context, listingID uuid.UUID) ([]Photo, error) {
	if listingID == uuid.Nil {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("media dependencies are not configured")
	}

	records, err := s.store.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list media records: %w", err)
	}

	photos := make([]Photo, 0, len(records))
	for _, rec := range records {
		url, err := s.storage.PresignGet(ctx, rec.ObjectKey, signedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("presign photo url: %w", err)
		}
		photos = append(photos, Photo{
			ID:         rec.ID,
			ListingID:  rec.ListingID,
			URL:        url,
			IsPrimary:  rec.IsPrimary,
			UploadedAt: rec.UploadedAt,
		})
	}

	return photos, nil
}

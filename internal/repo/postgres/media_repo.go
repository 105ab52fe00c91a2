package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becomecodx/HOMIGO/internal/domain/model"
)

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func (r *MediaRepo) CreateListingPhoto(ctx context.Context, listingID uuid.UUID, objectKey string, isPrimary bool, now time.Time) (model.ListingPhoto, error) {
	if listingID == uuid.Nil || objectKey == "" {
		return model.ListingPhoto{}, fmt.Errorf("invalid listing photo payload")
	}
	if r.pool == nil {
		return model.ListingPhoto{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec model.ListingPhoto
	err := r.pool.QueryRow(ctx, `
INSERT INTO listing_photos (
	photo_id, listing_id, object_key, is_primary, uploaded_at
) VALUES ($1, $2, $3, $4, $5)
RETURNING photo_id, listing_id, object_key, is_primary, uploaded_at
`, uuid.New(), listingID, objectKey, isPrimary, now.UTC()).Scan(
		&rec.ID,
		&rec.ListingID,
		&rec.ObjectKey,
		&rec.IsPrimary,
		&rec.UploadedAt,
	)
	if err != nil {
		return model.ListingPhoto{}, fmt.Errorf("create listing photo: %w", err)
	}

	return rec, nil
}

func (r *MediaRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]model.ListingPhoto, error) {
	if listingID == uuid.Nil {
		return nil, fmt.Errorf("invalid listing id")
	}
	if r.pool == nil {
		return []model.ListingPhoto{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT photo_id, listing_id, object_key, is_primary, uploaded_at
FROM listing_photos
WHERE listing_id = $1
ORDER BY is_primary DESC, uploaded_at ASC
`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list listing photos: %w", err)
	}
	defer rows.Close()

	items := make([]model.ListingPhoto, 0, 8)
	for rows.Next() {
		var rec model.ListingPhoto
		if err := rows.Scan(
			&rec.ID,
			&rec.ListingID,
			&rec.ObjectKey,
			&rec.IsPrimary,
			&rec.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing photo: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate listing photos: %w", rows.Err())
	}

	return items, nil
}

// ListDeletedListingPhotos returns photos whose listing was deleted
// before the cutoff. The retention job uses it to purge dead objects.
func (r *MediaRepo) ListDeletedListingPhotos(ctx context.Context, cutoff time.Time) ([]model.ListingPhoto, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.photo_id, p.listing_id, p.object_key, p.is_primary, p.uploaded_at
FROM listing_photos p
JOIN listings l ON l.listing_id = p.listing_id
WHERE l.status = 'deleted' AND l.updated_at < $1
`, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("list deleted listing photos: %w", err)
	}
	defer rows.Close()

	items := make([]model.ListingPhoto, 0, 8)
	for rows.Next() {
		var rec model.ListingPhoto
		if err := rows.Scan(
			&rec.ID,
			&rec.ListingID,
			&rec.ObjectKey,
			&rec.IsPrimary,
			&rec.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deleted listing photo: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate deleted listing photos: %w", rows.Err())
	}

	return items, nil
}

func (r *MediaRepo) DeletePhoto(ctx context.Context, photoID uuid.UUID) error {
	if photoID == uuid.Nil {
		return fmt.Errorf("invalid photo id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM listing_photos WHERE photo_id = $1`, photoID); err != nil {
		return fmt.Errorf("delete listing photo: %w", err)
	}
	return nil
}

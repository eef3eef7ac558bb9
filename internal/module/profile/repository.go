package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zelosify/server/internal/module/opening"
)

// Repository defines the interface for profile data access.
type Repository interface {
	FindLiveByKey(ctx context.Context, openingID, s3Key string) (*HiringProfile, error)
	FindLiveByID(ctx context.Context, profileID int64, openingID string) (*HiringProfile, error)
	Create(ctx context.Context, p *HiringProfile) error
	RefreshSubmission(ctx context.Context, profileID int64, submittedAt time.Time) error
	MarkDeleted(ctx context.Context, profileID int64) error
	ListByOpening(ctx context.Context, openingID string) ([]*HiringProfile, error)
	OpeningInTenant(ctx context.Context, openingID, tenantID string) (bool, error)

	// Transaction runs fn against a transactional copy of the repository,
	// committing on nil and rolling back on error.
	Transaction(ctx context.Context, fn func(Repository) error) error
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Transaction runs fn inside a database transaction.
func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// FindLiveByKey finds the non-deleted profile for an (opening, key) pair.
// At most one such row exists per pair.
func (r *repository) FindLiveByKey(ctx context.Context, openingID, s3Key string) (*HiringProfile, error) {
	var p HiringProfile
	err := r.db.WithContext(ctx).
		Where("opening_id = ? AND s3_key = ? AND is_deleted = ?", openingID, s3Key, false).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindLiveByID finds a non-deleted profile by ID within an opening.
func (r *repository) FindLiveByID(ctx context.Context, profileID int64, openingID string) (*HiringProfile, error) {
	var p HiringProfile
	err := r.db.WithContext(ctx).
		Where("id = ? AND opening_id = ? AND is_deleted = ?", profileID, openingID, false).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile row.
func (r *repository) Create(ctx context.Context, p *HiringProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// RefreshSubmission records a resubmission: the timestamp is refreshed and
// the review status reset.
func (r *repository) RefreshSubmission(ctx context.Context, profileID int64, submittedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&HiringProfile{}).
		Where("id = ?", profileID).
		Updates(map[string]any{
			"submitted_at": submittedAt,
			"status":       StatusSubmitted,
		}).Error
}

// MarkDeleted flips the soft-delete flag. The row is retained.
func (r *repository) MarkDeleted(ctx context.Context, profileID int64) error {
	return r.db.WithContext(ctx).
		Model(&HiringProfile{}).
		Where("id = ?", profileID).
		Update("is_deleted", true).Error
}

// ListByOpening lists live profiles for an opening, newest submission
// first.
func (r *repository) ListByOpening(ctx context.Context, openingID string) ([]*HiringProfile, error) {
	var profiles []*HiringProfile
	err := r.db.WithContext(ctx).
		Where("opening_id = ? AND is_deleted = ?", openingID, false).
		Order("submitted_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// OpeningInTenant re-verifies tenant ownership of an opening, used inside
// delete transactions.
func (r *repository) OpeningInTenant(ctx context.Context, openingID, tenantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&opening.Opening{}).
		Where("id = ? AND tenant_id = ?", openingID, tenantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

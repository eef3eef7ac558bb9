package opening

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository defines the interface for opening data access. Every lookup is
// scoped by tenant; there is no way to fetch an opening without one.
type Repository interface {
	GetByID(ctx context.Context, openingID, tenantID string) (*Opening, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Opening, error)
	Count(ctx context.Context, tenantID string) (int64, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new opening repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID retrieves an opening by ID within a tenant. A cross-tenant hit
// reports not found.
func (r *repository) GetByID(ctx context.Context, openingID, tenantID string) (*Opening, error) {
	var o Opening
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", openingID, tenantID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpeningNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List retrieves openings for a tenant, newest posted first.
func (r *repository) List(ctx context.Context, tenantID string, limit, offset int) ([]*Opening, error) {
	var openings []*Opening
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("posted_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&openings).Error
	if err != nil {
		return nil, err
	}
	return openings, nil
}

// Count returns the number of openings for a tenant.
func (r *repository) Count(ctx context.Context, tenantID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Opening{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error
	return total, err
}

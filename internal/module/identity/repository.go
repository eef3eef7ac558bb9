package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository defines the interface for identity data access.
type Repository interface {
	GetUserByExternalID(ctx context.Context, externalID string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*User, error)
	GetTenant(ctx context.Context, tenantID string) (*Tenant, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new identity repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetUserByExternalID retrieves a user by the identity provider's subject.
func (r *repository) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves users by their IDs.
func (r *repository) GetUsersByIDs(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*User
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetTenant retrieves a tenant by ID.
func (r *repository) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	var tenant Tenant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

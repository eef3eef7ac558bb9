package identity

import "time"

// Role represents a portal role.
type Role string

const (
	RoleVendor        Role = "IT_VENDOR"
	RoleHiringManager Role = "HIRING_MANAGER"
	RoleAdmin         Role = "ADMIN"
)

// User represents a portal user.
type User struct {
	ID         string `json:"id" gorm:"primaryKey"`
	ExternalID string `json:"-" gorm:"uniqueIndex;not null"`
	Username   string `json:"username" gorm:"not null"`
	Email      string `json:"email" gorm:"not null"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role" gorm:"not null"`
	TenantID   string `json:"tenantId" gorm:"index;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// Tenant represents an isolation boundary. Every query in the system is
// implicitly scoped by tenant ID.
type Tenant struct {
	TenantID    string    `json:"tenantId" gorm:"primaryKey"`
	CompanyName string    `json:"companyName" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the database table name.
func (Tenant) TableName() string {
	return "tenants"
}

// Identity is the authenticated caller attached to each request.
type Identity struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	TenantID    string `json:"tenantId"`
	CompanyName string `json:"companyName"`
}

// HasTenant reports whether the identity carries tenant context.
func (i *Identity) HasTenant() bool {
	return i != nil && i.TenantID != ""
}

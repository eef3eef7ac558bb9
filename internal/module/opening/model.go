package opening

import "time"

// Status represents the lifecycle status of an opening.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusOnHold Status = "ON_HOLD"
	StatusClosed Status = "CLOSED"
)

// Opening represents a tenant-scoped job requisition.
type Opening struct {
	ID                     string     `json:"id" gorm:"primaryKey"`
	TenantID               string     `json:"tenantId" gorm:"index:idx_openings_tenant;not null"`
	Title                  string     `json:"title" gorm:"not null"`
	Description            string     `json:"description"`
	Location               string     `json:"location"`
	ContractType           string     `json:"contractType"`
	ExperienceMin          int        `json:"experienceMin"`
	ExperienceMax          int        `json:"experienceMax"`
	Status                 Status     `json:"status" gorm:"not null;default:OPEN"`
	HiringManagerID        string     `json:"hiringManagerId" gorm:"not null"`
	PostedDate             time.Time  `json:"postedDate"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (Opening) TableName() string {
	return "openings"
}

// IsClosed reports whether the opening no longer accepts profiles.
func (o *Opening) IsClosed() bool {
	return o.Status == StatusClosed
}

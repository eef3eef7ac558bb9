package profile

import "time"

// Status represents the review status of a submitted profile.
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusShortlisted Status = "SHORTLISTED"
	StatusRejected    Status = "REJECTED"
)

// HiringProfile represents a candidate document submission against an
// opening. Rows are never hard-deleted; the soft-delete flag preserves
// storage-key history for audit.
type HiringProfile struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OpeningID   string    `json:"openingId" gorm:"index:idx_profiles_opening_key;not null"`
	S3Key       string    `json:"s3Key" gorm:"index:idx_profiles_opening_key;not null"`
	UploadedBy  string    `json:"uploadedBy" gorm:"not null"`
	Status      Status    `json:"status" gorm:"not null;default:SUBMITTED"`
	SubmittedAt time.Time `json:"submittedAt"`
	IsDeleted   bool      `json:"isDeleted" gorm:"not null;default:false"`
	Recommended bool      `json:"recommended" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (HiringProfile) TableName() string {
	return "hiring_profiles"
}

// FileName returns the original filename recovered from the storage key.
func (p *HiringProfile) FileName() string {
	return OriginalFilename(p.S3Key)
}

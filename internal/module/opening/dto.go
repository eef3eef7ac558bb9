package opening

import (
	"time"

	"github.com/zelosify/server/internal/utils/pagination"
)

// HiringManagerSummary is the manager subset exposed on listings.
type HiringManagerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListItem is one opening in a paginated listing.
type ListItem struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Location      string               `json:"location"`
	ContractType  string               `json:"contractType"`
	PostedDate    time.Time            `json:"postedDate"`
	Status        Status               `json:"status"`
	HiringManager HiringManagerSummary `json:"hiringManager"`
}

// ListResponse is the paginated opening listing.
type ListResponse struct {
	Pagination pagination.PageInfo `json:"pagination"`
	Openings   []ListItem          `json:"openings"`
}

// ProfileSummary is one submitted profile on the details view.
type ProfileSummary struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"fileName"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// DetailsResponse is the full opening view with submitted profiles.
type DetailsResponse struct {
	ID                     string               `json:"id"`
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	Location               string               `json:"location"`
	ContractType           string               `json:"contractType"`
	ExperienceMin          int                  `json:"experienceMin"`
	ExperienceMax          int                  `json:"experienceMax"`
	PostedDate             time.Time            `json:"postedDate"`
	ExpectedCompletionDate *time.Time           `json:"expectedCompletionDate,omitempty"`
	Status                 Status               `json:"status"`
	HiringManager          HiringManagerSummary `json:"hiringManager"`
	ProfilesSubmitted      int                  `json:"profilesSubmitted"`
	Profiles               []ProfileSummary     `json:"profiles"`
}

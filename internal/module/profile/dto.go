package profile

import "time"

// PresignRequest asks for upload authorizations for a batch of files.
type PresignRequest struct {
	Filenames []string `json:"filenames" binding:"required"`
}

// PresignedUpload is one authorized destination in a presign response.
type PresignedUpload struct {
	Filename       string `json:"filename"`
	DestinationKey string `json:"destinationKey"`
	UploadToken    string `json:"uploadToken"`
	UploadURL      string `json:"uploadUrl,omitempty"`
}

// PresignResponse carries the grants for a presign request.
type PresignResponse struct {
	Uploads   []PresignedUpload `json:"uploads"`
	ExpiresIn int64             `json:"expiresIn"`
}

// UploadItem is one file in a submission batch. Exactly one of the two
// transport forms is populated: raw content plus its upload token, or a
// pre-uploaded destination key.
type UploadItem struct {
	Filename string
	Content  []byte
	MimeType string
	Token    string

	S3Key string
}

// IsDirect reports whether the item references an already-stored object
// instead of carrying bytes.
func (i UploadItem) IsDirect() bool {
	return i.S3Key != ""
}

// directKeyItem is the JSON body shape for direct-key submissions. The key
// is not validated at bind time: a malformed item must surface as its own
// failure in the batch result, not reject the siblings.
type directKeyItem struct {
	S3Key string `json:"s3Key"`
}

// directUploadRequest is the JSON body for a direct-key submission batch.
type directUploadRequest struct {
	Uploads []directKeyItem `json:"uploads" binding:"required"`
}

// UploadResultItem reports the outcome for one file in a batch.
type UploadResultItem struct {
	Filename   string     `json:"filename"`
	S3Key      string     `json:"s3Key,omitempty"`
	Size       int64      `json:"size,omitempty"`
	Status     string     `json:"status"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// UploadResponse summarizes a submission batch.
type UploadResponse struct {
	UploadedFiles []UploadResultItem `json:"uploadedFiles"`
	TotalFiles    int                `json:"totalFiles"`
}

// Succeeded counts the items that completed both phases.
func (r *UploadResponse) Succeeded() int {
	n := 0
	for _, item := range r.UploadedFiles {
		if item.Status == UploadStatusSuccess {
			n++
		}
	}
	return n
}

// Per-item outcome statuses.
const (
	UploadStatusSuccess = "success"
	UploadStatusFailed  = "failed"
)

// DownloadGrant is a short-lived read authorization for a stored profile.
type DownloadGrant struct {
	ProfileID   int64  `json:"profileId"`
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// DeleteResponse confirms a soft-delete.
type DeleteResponse struct {
	ProfileID int64 `json:"profileId"`
}

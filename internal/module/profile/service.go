package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zelosify/server/internal/module/opening"
	"github.com/zelosify/server/internal/module/storage"
	"github.com/zelosify/server/internal/utils/metrics"
)

// ObjectStore is the storage surface the profile service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (*storage.PresignedURL, error)
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (*storage.PresignedURL, error)
}

// OpeningGate verifies opening access before profile operations touch
// storage or the database.
type OpeningGate interface {
	RequireAccepting(ctx context.Context, openingID, tenantID string) (*opening.Opening, error)
	Require(ctx context.Context, openingID, tenantID string) error
}

// ServiceConfig holds profile service tunables.
type ServiceConfig struct {
	DownloadExpiry time.Duration
	MaxFileSize    int64
	MaxConcurrency int
}

// Service implements profile upload and lifecycle business logic.
type Service struct {
	repo    Repository
	store   ObjectStore
	tokens  *TokenService
	gate    OpeningGate
	config  ServiceConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, store ObjectStore, tokens *TokenService, gate OpeningGate, cfg ServiceConfig, m *metrics.Metrics, logger *zap.Logger) *Service {
	if cfg.DownloadExpiry <= 0 {
		cfg.DownloadExpiry = 15 * time.Minute
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
	return &Service{
		repo:    repo,
		store:   store,
		tokens:  tokens,
		gate:    gate,
		config:  cfg,
		metrics: m,
		logger:  logger,
	}
}

// GenerateUploadTokens validates a filename batch and mints one upload
// authorization per file, each bound to a freshly derived destination key.
func (s *Service) GenerateUploadTokens(ctx context.Context, tenantID, openingID, uploadedBy string, filenames []string) (*PresignResponse, error) {
	if len(filenames) == 0 {
		return nil, &ValidationError{Message: "At least one filename is required"}
	}
	if len(filenames) > MaxFilesPerRequest {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Too many files: %d provided, maximum is %d", len(filenames), MaxFilesPerRequest),
		}
	}
	if invalid := invalidFilenames(filenames); len(invalid) > 0 {
		return nil, &ValidationError{
			Message:      "Invalid file type. Allowed types: .pdf, .pptx, .ppt",
			InvalidFiles: invalid,
		}
	}

	if _, err := s.gate.RequireAccepting(ctx, openingID, tenantID); err != nil {
		return nil, err
	}

	scope := TokenScope{TenantID: tenantID, OpeningID: openingID, UploadedBy: uploadedBy}
	now := time.Now()

	uploads := make([]PresignedUpload, 0, len(filenames))
	for _, name := range filenames {
		key := BuildObjectKey(tenantID, openingID, name, now)
		// One millisecond per file keeps same-named files in a single
		// batch on distinct keys.
		now = now.Add(time.Millisecond)

		token, err := s.tokens.Mint(key, scope)
		if err != nil {
			return nil, fmt.Errorf("mint upload token for %q: %w", name, err)
		}

		presigned, err := s.store.PresignUpload(ctx, key, s.tokens.Expiry())
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, PresignedUpload{
			Filename:       name,
			DestinationKey: key,
			UploadToken:    token,
			UploadURL:      presigned.URL,
		})
	}

	if s.metrics != nil {
		s.metrics.TokensIssued.Add(float64(len(uploads)))
	}
	s.logger.Info("upload tokens issued",
		zap.String("tenant_id", tenantID),
		zap.String("opening_id", openingID),
		zap.Int("count", len(uploads)))

	return &PresignResponse{
		Uploads:   uploads,
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
	}, nil
}

// storedItem is a Phase 1 outcome awaiting reconciliation.
type storedItem struct {
	index    int
	key      string
	filename string
	size     int64
}

// SubmitProfiles runs the two-phase submission flow: storage writes first,
// outside any transaction, then a single transaction reconciling every
// stored object into a profile row. A per-item failure never aborts the
// batch; the response reports each item's outcome in input order.
func (s *Service) SubmitProfiles(ctx context.Context, tenantID, openingID, uploadedBy string, items []UploadItem) (*UploadResponse, error) {
	if len(items) == 0 {
		return nil, ErrNoUploadItems
	}
	if len(items) > MaxFilesPerRequest {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Too many files: %d provided, maximum is %d", len(items), MaxFilesPerRequest),
		}
	}

	if _, err := s.gate.RequireAccepting(ctx, openingID, tenantID); err != nil {
		return nil, err
	}

	results := make([]UploadResultItem, len(items))
	stored := make([]*storedItem, len(items))

	// Phase 1: storage writes, bounded fan-out. Items carrying raw bytes
	// are written under their token's bound key; direct keys only have
	// their namespace verified.
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.config.MaxConcurrency)
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			item, err := s.storeItem(ctx, tenantID, openingID, items[i])
			if err != nil {
				results[i] = UploadResultItem{
					Filename: itemName(items[i]),
					Status:   UploadStatusFailed,
					Error:    err.Error(),
				}
				return
			}
			item.index = i
			stored[i] = item
		}(i)
	}
	wg.Wait()

	// Phase 2: reconcile every stored object into the database in one
	// transaction. A resubmission to an existing live (opening, key) pair
	// refreshes that row instead of creating a duplicate.
	if err := s.reconcile(ctx, openingID, uploadedBy, stored, results); err != nil {
		s.logger.Error("profile reconcile failed",
			zap.String("opening_id", openingID),
			zap.Error(err))
		for _, item := range stored {
			if item == nil {
				continue
			}
			results[item.index] = UploadResultItem{
				Filename: item.filename,
				S3Key:    item.key,
				Status:   UploadStatusFailed,
				Error:    "failed to record upload",
			}
		}
	}

	if s.metrics != nil {
		for i, res := range results {
			mode := "form"
			if items[i].IsDirect() {
				mode = "direct"
			}
			s.metrics.UploadsTotal.WithLabelValues(mode, res.Status).Inc()
			if res.Status == UploadStatusSuccess {
				s.metrics.UploadBytesTotal.Add(float64(res.Size))
			}
		}
	}

	return &UploadResponse{
		UploadedFiles: results,
		TotalFiles:    len(items),
	}, nil
}

// storeItem runs Phase 1 for one item and returns its stored location.
func (s *Service) storeItem(ctx context.Context, tenantID, openingID string, item UploadItem) (*storedItem, error) {
	if item.S3Key == "" && item.Filename == "" {
		return nil, errors.New("invalid upload item")
	}

	scope := KeyScope{TenantID: tenantID, OpeningID: openingID}

	if item.IsDirect() {
		if !scope.Contains(item.S3Key) {
			return nil, errors.New("key is outside this opening's namespace")
		}
		// The client claims it already wrote this object; verify before
		// recording a row that points at nothing.
		ok, err := s.store.ObjectExists(ctx, item.S3Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("no stored object found for key")
		}
		return &storedItem{key: item.S3Key, filename: OriginalFilename(item.S3Key)}, nil
	}

	if !hasAllowedExtension(item.Filename) {
		return nil, fmt.Errorf("invalid file type %q, allowed types: .pdf, .pptx, .ppt", item.Filename)
	}
	if s.config.MaxFileSize > 0 && int64(len(item.Content)) > s.config.MaxFileSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", s.config.MaxFileSize)
	}

	binding, err := s.tokens.Validate(item.Token)
	if err != nil {
		return nil, err
	}
	if err := binding.CheckScope(tenantID, openingID); err != nil {
		return nil, err
	}

	size := int64(len(item.Content))
	if err := s.store.PutObject(ctx, binding.Key, bytes.NewReader(item.Content), size, item.MimeType); err != nil {
		return nil, err
	}

	return &storedItem{key: binding.Key, filename: item.Filename, size: size}, nil
}

// reconcile runs Phase 2 in a single transaction.
func (s *Service) reconcile(ctx context.Context, openingID, uploadedBy string, stored []*storedItem, results []UploadResultItem) error {
	now := time.Now()
	return s.repo.Transaction(ctx, func(txRepo Repository) error {
		for _, item := range stored {
			if item == nil {
				continue
			}

			existing, err := txRepo.FindLiveByKey(ctx, openingID, item.key)
			switch {
			case err == nil:
				if err := txRepo.RefreshSubmission(ctx, existing.ID, now); err != nil {
					return err
				}
			case errors.Is(err, ErrProfileNotFound):
				p := &HiringProfile{
					OpeningID:   openingID,
					S3Key:       item.key,
					UploadedBy:  uploadedBy,
					Status:      StatusSubmitted,
					SubmittedAt: now,
				}
				if err := txRepo.Create(ctx, p); err != nil {
					return err
				}
			default:
				return err
			}

			uploadedAt := now
			results[item.index] = UploadResultItem{
				Filename:   item.filename,
				S3Key:      item.key,
				Size:       item.size,
				Status:     UploadStatusSuccess,
				UploadedAt: &uploadedAt,
			}
		}
		return nil
	})
}

// ListForOpening lists live profiles for an opening in submission order,
// newest first.
func (s *Service) ListForOpening(ctx context.Context, openingID, tenantID string) ([]opening.ProfileSummary, error) {
	ok, err := s.repo.OpeningInTenant(ctx, openingID, tenantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, opening.ErrOpeningNotFound
	}

	profiles, err := s.repo.ListByOpening(ctx, openingID)
	if err != nil {
		return nil, err
	}

	summaries := make([]opening.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, opening.ProfileSummary{
			ID:          p.ID,
			FileName:    p.FileName(),
			Status:      string(p.Status),
			SubmittedAt: p.SubmittedAt,
		})
	}
	return summaries, nil
}

// SoftDelete marks a profile deleted without removing its row or stored
// object. Tenant ownership of the opening is re-verified inside the same
// transaction as the flag update.
func (s *Service) SoftDelete(ctx context.Context, tenantID, openingID string, profileID int64) (*DeleteResponse, error) {
	err := s.repo.Transaction(ctx, func(txRepo Repository) error {
		ok, err := txRepo.OpeningInTenant(ctx, openingID, tenantID)
		if err != nil {
			return err
		}
		if !ok {
			return opening.ErrOpeningNotFound
		}

		p, err := txRepo.FindLiveByID(ctx, profileID, openingID)
		if err != nil {
			return err
		}
		return txRepo.MarkDeleted(ctx, p.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile soft-deleted",
		zap.String("tenant_id", tenantID),
		zap.String("opening_id", openingID),
		zap.Int64("profile_id", profileID))

	return &DeleteResponse{ProfileID: profileID}, nil
}

// IssueDownloadGrant returns a short-lived presigned download URL for a
// live profile.
func (s *Service) IssueDownloadGrant(ctx context.Context, tenantID, openingID string, profileID int64) (*DownloadGrant, error) {
	if err := s.gate.Require(ctx, openingID, tenantID); err != nil {
		return nil, err
	}

	p, err := s.repo.FindLiveByID(ctx, profileID, openingID)
	if err != nil {
		return nil, err
	}

	presigned, err := s.store.PresignDownload(ctx, p.S3Key, s.config.DownloadExpiry)
	if err != nil {
		return nil, err
	}

	return &DownloadGrant{
		ProfileID:   p.ID,
		FileName:    p.FileName(),
		DownloadURL: presigned.URL,
		ExpiresIn:   int64(s.config.DownloadExpiry.Seconds()),
	}, nil
}

func itemName(item UploadItem) string {
	if item.IsDirect() {
		return OriginalFilename(item.S3Key)
	}
	return item.Filename
}

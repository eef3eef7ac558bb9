package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/zelosify/server/internal/utils/metrics"
)

// Service resolves bearer tokens into request identities.
type Service struct {
	verifier TokenVerifier
	repo     Repository
	cache    Cache
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new identity service.
func NewService(verifier TokenVerifier, repo Repository, cache Cache, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		verifier: verifier,
		repo:     repo,
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

// Authenticate verifies the token and resolves the caller's user and tenant.
// Resolved identities are cached for a bounded TTL so repeated requests do
// not hit the database on every call.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	subject, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, subject)
		if err == nil {
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.WithLabelValues("identity").Inc()
			}
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			// A broken cache must not take authentication down with it.
			s.logger.Warn("identity cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.WithLabelValues("identity").Inc()
		}
	}

	user, err := s.repo.GetUserByExternalID(ctx, subject)
	if err != nil {
		return nil, err
	}

	id := &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	}

	if tenant, err := s.repo.GetTenant(ctx, user.TenantID); err == nil {
		id.CompanyName = tenant.CompanyName
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, subject, id); err != nil {
			s.logger.Warn("identity cache write failed", zap.Error(err))
		}
	}

	return id, nil
}

// LookupUsers resolves user summaries by ID, for joining display names onto
// opening listings.
func (s *Service) LookupUsers(ctx context.Context, ids []string) (map[string]*User, error) {
	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

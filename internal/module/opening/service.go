package opening

import (
	"context"

	"go.uber.org/zap"

	"github.com/zelosify/server/internal/module/identity"
	"github.com/zelosify/server/internal/utils/pagination"
)

// UserDirectory resolves hiring manager summaries.
type UserDirectory interface {
	LookupUsers(ctx context.Context, ids []string) (map[string]*identity.User, error)
}

// ProfileLister lists the live profiles submitted against an opening.
type ProfileLister interface {
	ListForOpening(ctx context.Context, openingID, tenantID string) ([]ProfileSummary, error)
}

// Service provides opening business logic.
type Service struct {
	repo     Repository
	users    UserDirectory
	profiles ProfileLister
	logger   *zap.Logger
}

// NewService creates a new opening service.
func NewService(repo Repository, users UserDirectory, profiles ProfileLister, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		profiles: profiles,
		logger:   logger,
	}
}

// List returns a page of openings for the tenant with hiring manager
// summaries joined in.
func (s *Service) List(ctx context.Context, tenantID string, p *pagination.Pagination) (*ListResponse, error) {
	total, err := s.repo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	openings, err := s.repo.List(ctx, tenantID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	managerIDs := make([]string, 0, len(openings))
	seen := make(map[string]bool, len(openings))
	for _, o := range openings {
		if !seen[o.HiringManagerID] {
			seen[o.HiringManagerID] = true
			managerIDs = append(managerIDs, o.HiringManagerID)
		}
	}

	managers, err := s.users.LookupUsers(ctx, managerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(openings))
	for _, o := range openings {
		items = append(items, ListItem{
			ID:            o.ID,
			Title:         o.Title,
			Location:      o.Location,
			ContractType:  o.ContractType,
			PostedDate:    o.PostedDate,
			Status:        o.Status,
			HiringManager: managerSummary(o.HiringManagerID, managers),
		})
	}

	return &ListResponse{
		Pagination: p.Info(total),
		Openings:   items,
	}, nil
}

// Get returns the opening details including its live profile list.
func (s *Service) Get(ctx context.Context, openingID, tenantID string) (*DetailsResponse, error) {
	o, err := s.repo.GetByID(ctx, openingID, tenantID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiles.ListForOpening(ctx, openingID, tenantID)
	if err != nil {
		return nil, err
	}

	managers, err := s.users.LookupUsers(ctx, []string{o.HiringManagerID})
	if err != nil {
		return nil, err
	}

	return &DetailsResponse{
		ID:                     o.ID,
		Title:                  o.Title,
		Description:            o.Description,
		Location:               o.Location,
		ContractType:           o.ContractType,
		ExperienceMin:          o.ExperienceMin,
		ExperienceMax:          o.ExperienceMax,
		PostedDate:             o.PostedDate,
		ExpectedCompletionDate: o.ExpectedCompletionDate,
		Status:                 o.Status,
		HiringManager:          managerSummary(o.HiringManagerID, managers),
		ProfilesSubmitted:      len(profiles),
		Profiles:               profiles,
	}, nil
}

// Gate exposes the opening access checks other modules run before writing
// profiles. It sits directly on the repository so cross-module wiring does
// not cycle through the services.
type Gate struct {
	repo Repository
}

// NewGate creates a new opening gate.
func NewGate(repo Repository) *Gate {
	return &Gate{repo: repo}
}

// RequireAccepting loads an opening and verifies it can accept profile
// submissions. Used as the pre-check by the upload paths.
func (g *Gate) RequireAccepting(ctx context.Context, openingID, tenantID string) (*Opening, error) {
	o, err := g.repo.GetByID(ctx, openingID, tenantID)
	if err != nil {
		return nil, err
	}
	if o.IsClosed() {
		return nil, ErrOpeningClosed
	}
	return o, nil
}

// Require verifies an opening exists within the tenant. Closed openings
// pass; their already-submitted profiles stay readable and deletable.
func (g *Gate) Require(ctx context.Context, openingID, tenantID string) error {
	_, err := g.repo.GetByID(ctx, openingID, tenantID)
	return err
}

func managerSummary(id string, managers map[string]*identity.User) HiringManagerSummary {
	if m, ok := managers[id]; ok {
		return HiringManagerSummary{
			ID:    m.ID,
			Name:  m.DisplayName(),
			Email: m.Email,
		}
	}
	return HiringManagerSummary{
		ID:    id,
		Name:  "Unknown",
		Email: "unknown@example.com",
	}
}

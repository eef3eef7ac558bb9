package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) Verify(string) (string, error) {
	return f.subject, f.err
}

type fakeRepo struct {
	users   map[string]*User
	tenants map[string]*Tenant
	lookups int
}

func (f *fakeRepo) GetUserByExternalID(_ context.Context, externalID string) (*User, error) {
	f.lookups++
	u, ok := f.users[externalID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetUsersByIDs(_ context.Context, ids []string) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) GetTenant(_ context.Context, tenantID string) (*Tenant, error) {
	t, ok := f.tenants[tenantID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return t, nil
}

type fakeCache struct {
	entries map[string]*Identity
}

func (f *fakeCache) Get(_ context.Context, subject string) (*Identity, error) {
	if id, ok := f.entries[subject]; ok {
		return id, nil
	}
	return nil, ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, subject string, id *Identity) error {
	f.entries[subject] = id
	return nil
}

func newTestService(verifier TokenVerifier, repo Repository, cache Cache) *Service {
	return NewService(verifier, repo, cache, nil, zap.NewNop())
}

func TestService_Authenticate(t *testing.T) {
	user := &User{
		ID:         "u-1",
		ExternalID: "sub-1",
		Username:   "vendor",
		Email:      "vendor@acme.test",
		Role:       RoleVendor,
		TenantID:   "tenant-a",
	}
	tenant := &Tenant{TenantID: "tenant-a", CompanyName: "Acme"}

	t.Run("cache miss resolves and caches", func(t *testing.T) {
		repo := &fakeRepo{
			users:   map[string]*User{"sub-1": user},
			tenants: map[string]*Tenant{"tenant-a": tenant},
		}
		cache := &fakeCache{entries: map[string]*Identity{}}
		svc := newTestService(&fakeVerifier{subject: "sub-1"}, repo, cache)

		id, err := svc.Authenticate(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id.UserID)
		assert.Equal(t, "tenant-a", id.TenantID)
		assert.Equal(t, "Acme", id.CompanyName)
		assert.Contains(t, cache.entries, "sub-1")
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := &fakeRepo{users: map[string]*User{"sub-1": user}}
		cache := &fakeCache{entries: map[string]*Identity{
			"sub-1": {UserID: "u-1", TenantID: "tenant-a"},
		}}
		svc := newTestService(&fakeVerifier{subject: "sub-1"}, repo, cache)

		id, err := svc.Authenticate(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id.UserID)
		assert.Zero(t, repo.lookups)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := newTestService(&fakeVerifier{err: ErrInvalidToken}, &fakeRepo{}, nil)

		_, err := svc.Authenticate(context.Background(), "token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeRepo{users: map[string]*User{}}
		svc := newTestService(&fakeVerifier{subject: "ghost"}, repo, nil)

		_, err := svc.Authenticate(context.Background(), "token")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"full name", User{FirstName: "Ada", LastName: "Lovelace", Username: "ada"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada", Username: "ada"}, "Ada"},
		{"last only", User{LastName: "Lovelace", Username: "ada"}, "Lovelace"},
		{"fallback to username", User{Username: "ada"}, "ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

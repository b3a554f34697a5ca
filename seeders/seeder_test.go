package seeders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/config"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

type memoryUsers struct {
	repositories.UserRepositoryInterface
	byEmail map[string]*entities.User
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *memoryUsers) CreateUser(_ context.Context, u *entities.User) error {
	u.ID = uuid.New()
	m.byEmail[u.Email] = u
	return nil
}

func org() config.OrganizationConfig {
	return config.OrganizationConfig{
		EmailDomain:       "@starnav.com.br",
		RootAdminEmail:    "Admin@starnav.com.br",
		RootAdminPassword: "s3cret-pass",
		RootAdminName:     "Administrator",
	}
}

func TestSeedRootAdmin(t *testing.T) {
	repo := &memoryUsers{byEmail: map[string]*entities.User{}}
	s := New(repo, org(), zap.NewNop())

	created, err := s.SeedRootAdmin(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	admin := repo.byEmail["admin@starnav.com.br"]
	require.NotNil(t, admin)
	assert.Equal(t, authz.RoleAdmin, admin.Role)
	assert.Equal(t, authz.SectorAdministration, admin.Sector)
	assert.NoError(t, utils.ComparePasswords(admin.PasswordHash, "s3cret-pass"))

	created, err = s.SeedRootAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.byEmail, 1)
}

func TestSeedRootAdmin_Rejected(t *testing.T) {
	repo := &memoryUsers{byEmail: map[string]*entities.User{}}

	noPassword := org()
	noPassword.RootAdminPassword = ""
	_, err := New(repo, noPassword, zap.NewNop()).SeedRootAdmin(context.Background())
	assert.Error(t, err)

	for _, email := range []string{"admin@example.com", "root@evil-starnav.com.br", "root@mail.starnav.com.br"} {
		foreign := org()
		foreign.RootAdminEmail = email
		_, err = New(repo, foreign, zap.NewNop()).SeedRootAdmin(context.Background())
		assert.Error(t, err, email)
	}
	assert.Empty(t, repo.byEmail)
}

func TestSeedDemoUsers_BareDomain(t *testing.T) {
	repo := &memoryUsers{byEmail: map[string]*entities.User{}}
	cfg := org()
	cfg.EmailDomain = "starnav.com.br"

	n, err := New(repo, cfg, zap.NewNop()).SeedDemoUsers(context.Background(), "demo-password")
	require.NoError(t, err)
	assert.Equal(t, len(demoProfiles), n)
	for email := range repo.byEmail {
		assert.Contains(t, email, "@starnav.com.br")
	}
}

func TestSeedDemoUsers(t *testing.T) {
	repo := &memoryUsers{byEmail: map[string]*entities.User{}}
	s := New(repo, org(), zap.NewNop())

	_, err := s.SeedDemoUsers(context.Background(), "short")
	assert.Error(t, err)

	n, err := s.SeedDemoUsers(context.Background(), "demo-password")
	require.NoError(t, err)
	assert.Equal(t, len(demoProfiles), n)

	engine := authz.NewEngine("@starnav.com.br")
	for _, u := range repo.byEmail {
		assert.True(t, engine.CanView(u.Identity()).Allowed(), u.Email)
	}

	n, err = s.SeedDemoUsers(context.Background(), "demo-password")
	require.NoError(t, err)
	assert.Zero(t, n)
}

package seeders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/config"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

// Seeder creates the accounts a fresh installation needs. Every step is
// idempotent: accounts that already exist are left untouched.
type Seeder struct {
	userRepo repositories.UserRepositoryInterface
	org      config.OrganizationConfig
	logger   *zap.Logger
}

func New(userRepo repositories.UserRepositoryInterface, org config.OrganizationConfig, logger *zap.Logger) *Seeder {
	return &Seeder{userRepo: userRepo, org: org, logger: logger}
}

// SeedRootAdmin creates the bootstrap administrator from the organization config.
func (s *Seeder) SeedRootAdmin(ctx context.Context) (bool, error) {
	if s.org.RootAdminPassword == "" {
		return false, fmt.Errorf("ORG_ROOT_ADMIN_PASSWORD is required to seed the root administrator")
	}
	return s.ensureUser(ctx, entities.User{
		Name:   s.org.RootAdminName,
		Email:  s.org.RootAdminEmail,
		Role:   authz.RoleAdmin,
		Sector: authz.SectorAdministration,
	}, s.org.RootAdminPassword)
}

// SeedDemoUsers creates one account per demo profile, all sharing password.
func (s *Seeder) SeedDemoUsers(ctx context.Context, password string) (int, error) {
	if len(password) < 8 {
		return 0, fmt.Errorf("demo password must be at least 8 characters")
	}
	created := 0
	for _, p := range demoProfiles {
		ok, err := s.ensureUser(ctx, entities.User{
			Name:   p.name,
			Email:  p.local + authz.NormalizeDomain(s.org.EmailDomain),
			Role:   p.role,
			Sector: p.sector,
		}, password)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func (s *Seeder) ensureUser(ctx context.Context, user entities.User, password string) (bool, error) {
	user.Email = strings.ToLower(user.Email)
	if !(authz.Identity{Email: user.Email}).HasEmailDomain(s.org.EmailDomain) {
		return false, fmt.Errorf("seed %s: email must belong to %s", user.Email, s.org.EmailDomain)
	}

	_, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		s.logger.Info("user already exists, skipping", zap.String("email", user.Email))
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("look up %s: %w", user.Email, err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	user.PasswordHash = hash
	if err := s.userRepo.CreateUser(ctx, &user); err != nil {
		return false, fmt.Errorf("create %s: %w", user.Email, err)
	}
	s.logger.Info("user seeded",
		zap.String("email", user.Email),
		zap.Stringer("role", user.Role),
		zap.Stringer("sector", user.Sector),
	)
	return true, nil
}

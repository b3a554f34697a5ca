package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/utils"
)

type UserServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error)
	GetUsers(ctx context.Context, filter dto.UserFilter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ResetPassword(ctx context.Context, id uuid.UUID, payload dto.ResetPasswordDTO) error
	ChangeOwnPassword(ctx context.Context, payload dto.ChangePasswordDTO) error
}

type UserService struct {
	userRepo       repositories.UserRepositoryInterface
	identity       *IdentityLoader
	logger         *zap.Logger
	domain         string
	rootAdminEmail string
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	identity *IdentityLoader,
	logger *zap.Logger,
	emailDomain string,
	rootAdminEmail string,
) UserServiceInterface {
	return &UserService{
		userRepo:       userRepo,
		identity:       identity,
		logger:         logger,
		domain:         emailDomain,
		rootAdminEmail: strings.ToLower(rootAdminEmail),
	}
}

// requireAdmin loads the actor and refuses anyone but an administrator of the
// organization domain.
func (s *UserService) requireAdmin(ctx context.Context) (*entities.User, error) {
	user, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasEmailDomain(s.domain) {
		return nil, &authz.DeniedError{Reason: authz.ReasonEmailDomain}
	}
	if !id.IsAdmin() {
		return nil, &authz.DeniedError{Reason: "only administrators can manage users"}
	}
	return user, nil
}

func (s *UserService) checkNewAccount(email string, role authz.Role, sector authz.Sector) error {
	if !(authz.Identity{Email: email}).HasEmailDomain(s.domain) {
		return apperrors.NewInvalidInputError("email must belong to the %s domain", s.domain)
	}
	if strings.EqualFold(strings.TrimSpace(email), s.rootAdminEmail) {
		return apperrors.NewInvalidInputError("this email is reserved")
	}
	if !role.IsValid() {
		return apperrors.NewInvalidInputError("unknown role")
	}
	if !sector.IsValid() {
		return apperrors.NewInvalidInputError("unknown sector")
	}
	return nil
}

func (s *UserService) create(ctx context.Context, name, email, password string, role authz.Role, sector authz.Sector) (*dto.UserDTO, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Role:         role,
		Sector:       sector,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "a user with this email already exists", nil)
		}
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

// Register is public self-service sign-up. Administrators are never created here.
func (s *UserService) Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error) {
	if payload.Role == authz.RoleAdmin {
		return nil, &authz.DeniedError{Reason: "administrator accounts cannot be self-registered"}
	}
	if err := s.checkNewAccount(payload.Email, payload.Role, payload.Sector); err != nil {
		return nil, err
	}
	user, err := s.create(ctx, payload.Name, payload.Email, payload.Password, payload.Role, payload.Sector)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("userID", user.ID), zap.Stringer("role", payload.Role), zap.Stringer("sector", payload.Sector))
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context, filter dto.UserFilter) ([]dto.UserDTO, uint64, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	return out, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkNewAccount(payload.Email, payload.Role, payload.Sector); err != nil {
		return nil, err
	}
	user, err := s.create(ctx, payload.Name, payload.Email, payload.Password, payload.Role, payload.Sector)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("userID", user.ID), zap.String("by", admin.ID.String()))
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil && !strings.EqualFold(*payload.Email, user.Email) {
		if !(authz.Identity{Email: *payload.Email}).HasEmailDomain(s.domain) {
			return nil, apperrors.NewInvalidInputError("email must belong to the %s domain", s.domain)
		}
		user.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.Role != nil {
		if !payload.Role.IsValid() {
			return nil, apperrors.NewInvalidInputError("unknown role")
		}
		user.Role = *payload.Role
	}
	if payload.Sector != nil {
		if !payload.Sector.IsValid() {
			return nil, apperrors.NewInvalidInputError("unknown sector")
		}
		user.Sector = *payload.Sector
	}
	if user.ID == admin.ID && user.Role != authz.RoleAdmin {
		return nil, apperrors.NewInvalidInputError("you cannot remove your own administrator role")
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "a user with this email already exists", nil)
		}
		return nil, err
	}
	s.logger.Info("user updated", zap.String("userID", user.ID.String()), zap.String("by", admin.ID.String()))
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	if admin.ID == id {
		return apperrors.NewInvalidInputError("you cannot delete your own account")
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("userID", id.String()), zap.String("by", admin.ID.String()))
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, payload dto.ResetPasswordDTO) error {
	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info("password reset by administrator", zap.String("userID", id.String()), zap.String("by", admin.ID.String()))
	return nil
}

func (s *UserService) ChangeOwnPassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	user, _, err := s.identity.Actor(ctx)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.CurrentPassword); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return apperrors.NewInvalidInputError("current password is incorrect")
		}
		return err
	}
	if payload.NewPassword == payload.CurrentPassword {
		return apperrors.NewInvalidInputError("new password must differ from the current one")
	}
	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

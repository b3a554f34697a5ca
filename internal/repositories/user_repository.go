package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	apperrors "vessel-orders/pkg/errors"
)

const (
	userTable = "users"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "sector", "created_at", "updated_at"}

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUsers(ctx context.Context, filter dto.UserFilter) ([]entities.User, uint64, error)
	UpdateUser(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	psql    sq.StatementBuilderType
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Sector, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	query, args, err := r.psql.Insert(userTable).
		Columns("name", "email", "password_hash", "role", "sector").
		Values(user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Role.String(), user.Sector.String()).
		Suffix("RETURNING id, email, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	return mapPgError(err)
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.User, error) {
	query, args, err := r.psql.Select(userColumns...).From(userTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Expr("lower(email) = lower(?)", strings.TrimSpace(email)))
}

func (r *UserRepository) GetUsers(ctx context.Context, filter dto.UserFilter) ([]entities.User, uint64, error) {
	apply := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{sq.ILike{"name": pat}, sq.ILike{"email": pat}})
		}
		if filter.Role.IsValid() {
			b = b.Where(sq.Eq{"role": filter.Role.String()})
		}
		if filter.Sector.IsValid() {
			b = b.Where(sq.Eq{"sector": filter.Sector.String()})
		}
		return b
	}

	countQuery, countArgs, err := apply(r.psql.Select("COUNT(*)").From(userTable)).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	b := apply(r.psql.Select(userColumns...).From(userTable)).OrderBy("name ASC")
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit).Offset(filter.Offset)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	query, args, err := r.psql.Update(userTable).
		Set("name", user.Name).
		Set("email", strings.ToLower(user.Email)).
		Set("role", user.Role.String()).
		Set("sector", user.Sector.String()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return mapPgError(r.storage.QueryRow(ctx, query, args...).Scan(&user.UpdatedAt))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
)

type PreferenceRepositoryInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.DashboardPreference, error)
	Upsert(ctx context.Context, pref *entities.DashboardPreference) error
}

type PreferenceRepository struct {
	storage *pgxpool.Pool
}

func NewPreferenceRepository(storage *pgxpool.Pool) PreferenceRepositoryInterface {
	return &PreferenceRepository{storage: storage}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID uuid.UUID) (*entities.DashboardPreference, error) {
	var (
		pref  = entities.DashboardPreference{UserID: userID}
		codes []string
	)
	err := r.storage.QueryRow(ctx,
		`SELECT visible_statuses, updated_at FROM dashboard_preferences WHERE user_id = $1`, userID).
		Scan(&codes, &pref.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}

	pref.VisibleStatuses = make([]authz.OrderStatus, 0, len(codes))
	for _, code := range codes {
		s, err := authz.ParseStatus(code)
		if err != nil {
			// statuses renamed since the row was written are dropped
			continue
		}
		pref.VisibleStatuses = append(pref.VisibleStatuses, s)
	}
	return &pref, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *entities.DashboardPreference) error {
	codes := make([]string, len(pref.VisibleStatuses))
	for i, s := range pref.VisibleStatuses {
		codes[i] = s.String()
	}
	err := r.storage.QueryRow(ctx, `
		INSERT INTO dashboard_preferences (user_id, visible_statuses, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET visible_statuses = EXCLUDED.visible_statuses, updated_at = now()
		RETURNING updated_at`, pref.UserID, codes).Scan(&pref.UpdatedAt)
	return mapPgError(err)
}

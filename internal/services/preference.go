package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	apperrors "vessel-orders/pkg/errors"
)

const maxVisibleStatuses = 20

type PreferenceServiceInterface interface {
	Get(ctx context.Context) (*dto.DashboardPreferenceDTO, error)
	Save(ctx context.Context, payload dto.DashboardPreferenceDTO) (*dto.DashboardPreferenceDTO, error)
}

type PreferenceService struct {
	repo      repositories.PreferenceRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	identity  *IdentityLoader
	logger    *zap.Logger
	ttl       time.Duration
}

func NewPreferenceService(
	repo repositories.PreferenceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	identity *IdentityLoader,
	logger *zap.Logger,
	ttl time.Duration,
) *PreferenceService {
	return &PreferenceService{repo: repo, cacheRepo: cacheRepo, identity: identity, logger: logger, ttl: ttl}
}

func preferenceKey(userID string) string { return "dashboard_prefs:" + userID }

// defaultVisibleStatuses is every status that still needs attention.
func defaultVisibleStatuses() []authz.OrderStatus {
	out := make([]authz.OrderStatus, 0)
	for _, s := range authz.AllStatuses() {
		if !s.IsFinal() {
			out = append(out, s)
		}
	}
	return out
}

func (s *PreferenceService) Get(ctx context.Context) (*dto.DashboardPreferenceDTO, error) {
	actor, _, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	key := preferenceKey(actor.ID.String())

	if raw, err := s.cacheRepo.Get(ctx, key); err == nil {
		var cached dto.DashboardPreferenceDTO
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("dropping unreadable cached preferences", zap.String("userID", actor.ID.String()))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("preference cache read failed", zap.Error(err))
	}

	out := &dto.DashboardPreferenceDTO{}
	pref, err := s.repo.Get(ctx, actor.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		out.VisibleStatuses = defaultVisibleStatuses()
	case err != nil:
		return nil, err
	case len(pref.VisibleStatuses) == 0:
		out.VisibleStatuses = defaultVisibleStatuses()
	default:
		out.VisibleStatuses = pref.VisibleStatuses
	}

	s.store(ctx, key, out)
	return out, nil
}

func (s *PreferenceService) Save(ctx context.Context, payload dto.DashboardPreferenceDTO) (*dto.DashboardPreferenceDTO, error) {
	actor, _, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]authz.OrderStatus, 0, len(payload.VisibleStatuses))
	seen := make(map[authz.OrderStatus]bool, len(payload.VisibleStatuses))
	for _, st := range payload.VisibleStatuses {
		if !st.IsValid() {
			return nil, apperrors.NewInvalidInputError("unknown status in preferences")
		}
		if seen[st] {
			continue
		}
		seen[st] = true
		statuses = append(statuses, st)
	}
	if len(statuses) == 0 || len(statuses) > maxVisibleStatuses {
		return nil, apperrors.NewInvalidInputError("between 1 and %d statuses must be selected", maxVisibleStatuses)
	}

	pref := &entities.DashboardPreference{UserID: actor.ID, VisibleStatuses: statuses}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return nil, err
	}

	out := &dto.DashboardPreferenceDTO{VisibleStatuses: statuses}
	s.store(ctx, preferenceKey(actor.ID.String()), out)
	return out, nil
}

func (s *PreferenceService) store(ctx context.Context, key string, pref *dto.DashboardPreferenceDTO) {
	raw, err := json.Marshal(pref)
	if err != nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("preference cache write failed", zap.String("key", key), zap.Error(err))
	}
}

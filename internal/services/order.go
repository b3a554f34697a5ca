package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/events"
	"vessel-orders/internal/repositories"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/filestorage"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	GetOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	AllowedTransitions(ctx context.Context, id uuid.UUID) (*dto.TransitionsDTO, error)
	History(ctx context.Context, id uuid.UUID) ([]dto.OrderHistoryDTO, error)
}

type OrderService struct {
	orderRepo   repositories.ServiceOrderRepositoryInterface
	historyRepo repositories.OrderHistoryRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	txManager   repositories.TxManagerInterface
	fileStorage filestorage.FileStorageInterface
	engine      *authz.Engine
	identity    *IdentityLoader
	bus         EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	orderRepo repositories.ServiceOrderRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	engine *authz.Engine,
	identity *IdentityLoader,
	bus EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		fileStorage: fileStorage,
		engine:      engine,
		identity:    identity,
		bus:         bus,
		logger:      logger,
		now:         time.Now,
	}
}

// authorize logs the decision and converts refusals into errors.
func (s *OrderService) authorize(d authz.Decision, op authz.Operation, id authz.Identity, orderID string) error {
	switch d.Verdict {
	case authz.Allowed:
		return nil
	case authz.Invalid:
		s.logger.Error("authorization input invalid",
			zap.Stringer("op", op), zap.String("userID", id.ID), zap.String("orderID", orderID), zap.Error(d.Cause))
	default:
		s.logger.Info("authorization denied",
			zap.Stringer("op", op), zap.String("userID", id.ID), zap.Stringer("role", id.Role),
			zap.Stringer("sector", id.Sector), zap.String("orderID", orderID), zap.String("reason", d.Reason))
	}
	return d.Err()
}

func parseOptionalUUID(raw *string) (uuid.NullUUID, error) {
	if raw == nil || *raw == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.NullUUID{}, apperrors.NewInvalidInputError("invalid user id %q", *raw)
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func (s *OrderService) checkAssignee(ctx context.Context, assignee uuid.NullUUID) error {
	if !assignee.Valid {
		return nil
	}
	if _, err := s.userRepo.FindByID(ctx, assignee.UUID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInvalidInputError("assigned user does not exist")
		}
		return err
	}
	return nil
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	actor, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(s.engine.CanCreate(id), authz.OpCreate, id, ""); err != nil {
		return nil, err
	}

	priority := entities.Priority(strings.ToUpper(payload.Priority))
	if !priority.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown priority %q", payload.Priority)
	}
	assignee, err := parseOptionalUUID(payload.AssignedToID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, assignee); err != nil {
		return nil, err
	}

	order := &entities.ServiceOrder{
		Title:          strings.TrimSpace(payload.Title),
		Description:    null.StringFromPtr(payload.Description),
		ScopeOfService: null.StringFromPtr(payload.ScopeOfService),
		Ship:           strings.TrimSpace(payload.Ship),
		Location:       null.StringFromPtr(payload.Location),
		Priority:       priority,
		Status:         authz.StatusPending,
		CreatedByID:    actor.ID,
		AssignedToID:   assignee,
		DueDate:        null.TimeFromPtr(payload.DueDate),
	}
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("service order created", zap.String("orderID", order.ID.String()), zap.String("userID", id.ID))

	return s.FindOrder(ctx, order.ID)
}

func (s *OrderService) GetOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderDTO, uint64, error) {
	_, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := s.authorize(s.engine.CanView(id), authz.OpView, id, ""); err != nil {
		return nil, 0, err
	}

	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, dto.NewOrderDTO(&orders[i], now))
	}
	return out, total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderDTO, error) {
	_, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(s.engine.CanView(id), authz.OpView, id, orderID.String()); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := dto.NewOrderDTO(order, s.now())
	return &out, nil
}

// UpdateOrder applies a partial update. The edit check runs against the
// status the order had before the update; restricted fields are checked only
// when their value actually changes.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	actor, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}

	var (
		changed *events.OrderStatusChangedEvent
		updated *entities.ServiceOrder
	)
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		snapshot := order.Snapshot()
		if err := s.authorize(s.engine.CanEdit(id, snapshot), authz.OpEdit, id, snapshot.ID); err != nil {
			return err
		}

		next, touched, err := applyOrderPatch(order, payload)
		if err != nil {
			return err
		}
		for _, field := range touched {
			if err := s.authorize(s.engine.CanEditField(id, field), authz.OpEditField, id, snapshot.ID); err != nil {
				return err
			}
		}
		if next.Status != order.Status {
			if err := s.authorize(s.engine.ValidateTransition(id, snapshot, next.Status), authz.OpTransition, id, snapshot.ID); err != nil {
				return err
			}
		}
		if next.AssignedToID != order.AssignedToID {
			if err := s.checkAssignee(ctx, next.AssignedToID); err != nil {
				return err
			}
		}

		now := s.now()
		applyCompletion(next, order.Status, payload.CompletedAt, now)
		if next.DueDate.Valid != order.DueDate.Valid || !next.DueDate.Time.Equal(order.DueDate.Time) {
			next.OverdueNotified = false
		}

		if err := s.orderRepo.UpdateOrder(ctx, tx, next); err != nil {
			return err
		}

		if next.Status != order.Status {
			h := &entities.OrderHistory{
				OrderID:    order.ID,
				FromStatus: order.Status,
				ToStatus:   next.Status,
				ChangedBy:  uuid.NullUUID{UUID: actor.ID, Valid: true},
				Comment:    null.StringFromPtr(payload.Comment),
			}
			if err := s.historyRepo.AddStatusChange(ctx, tx, h); err != nil {
				return err
			}
			changed = &events.OrderStatusChangedEvent{
				OrderID:     order.ID.String(),
				Title:       next.Title,
				Ship:        next.Ship,
				From:        order.Status,
				To:          next.Status,
				ActorID:     actor.ID.String(),
				ActorName:   actor.Name,
				CreatedByID: order.CreatedByID.String(),
				ChangedAt:   h.ChangedAt,
			}
			if next.AssignedToID.Valid {
				changed.AssignedToID = next.AssignedToID.UUID.String()
			}
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed != nil {
		s.logger.Info("service order status changed",
			zap.String("orderID", changed.OrderID), zap.Stringer("from", changed.From), zap.Stringer("to", changed.To),
			zap.String("userID", changed.ActorID))
		s.bus.Publish(ctx, *changed)
	}
	out := dto.NewOrderDTO(updated, s.now())
	return &out, nil
}

// applyCompletion keeps completedAt consistent with the status: stamped when
// the order becomes completed, cleared when it leaves that status.
func applyCompletion(next *entities.ServiceOrder, previous authz.OrderStatus, supplied *time.Time, now time.Time) {
	switch {
	case next.Status != authz.StatusCompleted:
		next.CompletedAt = null.Time{}
	case supplied != nil:
		next.CompletedAt = null.TimeFrom(*supplied)
	case previous != authz.StatusCompleted || !next.CompletedAt.Valid:
		next.CompletedAt = null.TimeFrom(now)
	}
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	_, id, err := s.identity.Actor(ctx)
	if err != nil {
		return err
	}
	if err := s.authorize(s.engine.CanDelete(id), authz.OpDelete, id, orderID.String()); err != nil {
		return err
	}

	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	for _, url := range order.ReportAttachments {
		if err := s.fileStorage.Delete(url); err != nil {
			s.logger.Warn("could not remove attachment of deleted order", zap.String("orderID", orderID.String()), zap.String("url", url), zap.Error(err))
		}
	}
	s.logger.Info("service order deleted", zap.String("orderID", orderID.String()), zap.String("userID", id.ID))
	return nil
}

func (s *OrderService) AllowedTransitions(ctx context.Context, orderID uuid.UUID) (*dto.TransitionsDTO, error) {
	_, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(s.engine.CanView(id), authz.OpView, id, orderID.String()); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out := &dto.TransitionsDTO{Current: order.Status, Allowed: []authz.OrderStatus{}}
	if s.engine.CanEdit(id, order.Snapshot()).Allowed() {
		if allowed := s.engine.AllowedTransitions(id, order.Snapshot()); allowed != nil {
			out.Allowed = allowed
		}
	}
	return out, nil
}

func (s *OrderService) History(ctx context.Context, orderID uuid.UUID) ([]dto.OrderHistoryDTO, error) {
	_, id, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(s.engine.CanView(id), authz.OpView, id, orderID.String()); err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	rows, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderHistoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewOrderHistoryDTO(&rows[i]))
	}
	return out, nil
}

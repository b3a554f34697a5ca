package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vessel-orders/internal/entities"
)

type OrderHistoryRepositoryInterface interface {
	AddStatusChange(ctx context.Context, tx pgx.Tx, h *entities.OrderHistory) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entities.OrderHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderHistoryRepository(storage *pgxpool.Pool) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage}
}

func (r *OrderHistoryRepository) AddStatusChange(ctx context.Context, tx pgx.Tx, h *entities.OrderHistory) error {
	query := `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, changed_at`
	err := pick(r.storage, tx).QueryRow(ctx, query, h.OrderID, h.FromStatus.String(), h.ToStatus.String(), h.ChangedBy, h.Comment).
		Scan(&h.ID, &h.ChangedAt)
	return mapPgError(err)
}

func (r *OrderHistoryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entities.OrderHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_by, comment, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at, id`
	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order history: %w", err)
	}
	defer rows.Close()

	history := make([]entities.OrderHistory, 0)
	for rows.Next() {
		var h entities.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Comment, &h.ChangedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

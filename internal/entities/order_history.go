package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"vessel-orders/internal/authz"
)

// OrderHistory is one status change of a service order.
type OrderHistory struct {
	ID         uint64            `db:"id"`
	OrderID    uuid.UUID         `db:"order_id"`
	FromStatus authz.OrderStatus `db:"from_status"`
	ToStatus   authz.OrderStatus `db:"to_status"`
	ChangedBy  uuid.NullUUID     `db:"changed_by"`
	Comment    null.String       `db:"comment"`
	ChangedAt  time.Time         `db:"changed_at"`
}

type DashboardPreference struct {
	UserID          uuid.UUID           `db:"user_id"`
	VisibleStatuses []authz.OrderStatus `db:"visible_statuses"`
	UpdatedAt       time.Time           `db:"updated_at"`
}

package events

import (
	"time"

	"vessel-orders/internal/authz"
)

const (
	OrderStatusChanged = "order.status_changed"
	OrderOverdue       = "order.overdue"
)

// OrderStatusChangedEvent is published after a status change is committed.
type OrderStatusChangedEvent struct {
	OrderID      string
	Title        string
	Ship         string
	From         authz.OrderStatus
	To           authz.OrderStatus
	ActorID      string
	ActorName    string
	CreatedByID  string
	AssignedToID string
	ChangedAt    time.Time
}

func (e OrderStatusChangedEvent) Name() string { return OrderStatusChanged }

// OrderOverdueEvent is published once per order when its due date passes.
type OrderOverdueEvent struct {
	OrderID      string
	Title        string
	Ship         string
	Status       authz.OrderStatus
	DueDate      time.Time
	CreatedByID  string
	AssignedToID string
}

func (e OrderOverdueEvent) Name() string { return OrderOverdue }

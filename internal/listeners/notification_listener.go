package listeners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vessel-orders/internal/events"
	"vessel-orders/pkg/eventbus"
	"vessel-orders/pkg/websocket"
)

// Notifier delivers a message to every open connection of a user.
type Notifier interface {
	SendMessageToUser(userID string, payload interface{}, messageType string) error
}

// NotificationListener turns order events into websocket notifications for
// the order's creator and assignee. The user who caused the event is skipped.
type NotificationListener struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewNotificationListener(notifier Notifier, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{notifier: notifier, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChanged, l.handleStatusChanged)
	bus.Subscribe(events.OrderOverdue, l.handleOverdue)
	l.logger.Info("notification listener subscribed", zap.Strings("events", []string{events.OrderStatusChanged, events.OrderOverdue}))
}

func orderLink(orderID string) string { return "/orders/" + orderID }

// recipients returns the distinct non-empty ids, minus skip.
func recipients(skip string, ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == skip {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}

func (l *NotificationListener) handleStatusChanged(_ context.Context, e eventbus.Event) error {
	event, ok := e.(events.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	payload := websocket.NotificationPayload{
		EventID:   uuid.NewString(),
		Type:      websocket.TypeOrderStatusChanged,
		Actor:     websocket.ActorInfo{ID: event.ActorID, Name: event.ActorName},
		Message:   fmt.Sprintf("%s changed order %q (%s) from %s to %s", event.ActorName, event.Title, event.Ship, event.From, event.To),
		Links:     websocket.LinkInfo{Primary: orderLink(event.OrderID)},
		CreatedAt: event.ChangedAt,
	}
	l.deliver(recipients(event.ActorID, event.CreatedByID, event.AssignedToID), payload, event.OrderID)
	return nil
}

func (l *NotificationListener) handleOverdue(_ context.Context, e eventbus.Event) error {
	event, ok := e.(events.OrderOverdueEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	payload := websocket.NotificationPayload{
		EventID:   uuid.NewString(),
		Type:      websocket.TypeOrderOverdue,
		Actor:     websocket.ActorInfo{Name: "system"},
		Message:   fmt.Sprintf("Order %q (%s) passed its due date %s while %s", event.Title, event.Ship, event.DueDate.Format("2006-01-02"), event.Status),
		Links:     websocket.LinkInfo{Primary: orderLink(event.OrderID)},
		CreatedAt: event.DueDate,
	}
	l.deliver(recipients("", event.CreatedByID, event.AssignedToID), payload, event.OrderID)
	return nil
}

func (l *NotificationListener) deliver(userIDs []string, payload websocket.NotificationPayload, orderID string) {
	for _, userID := range userIDs {
		if err := l.notifier.SendMessageToUser(userID, payload, payload.Type); err != nil {
			l.logger.Warn("notification not delivered",
				zap.String("userID", userID), zap.String("orderID", orderID), zap.Error(err))
		}
	}
}

package websocket

import "time"

// Envelope wraps every message pushed to browsers; Type tells the client how
// to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderOverdue       = "order.overdue"
)

// NotificationPayload is the bell notification shown by the dashboard.
type NotificationPayload struct {
	EventID   string    `json:"eventId"`
	Type      string    `json:"type"`
	Actor     ActorInfo `json:"actor"`
	Message   string    `json:"message"`
	Links     LinkInfo  `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
}

type ActorInfo struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type LinkInfo struct {
	Primary string `json:"primary"`
}

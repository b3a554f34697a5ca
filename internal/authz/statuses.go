package authz

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus is a vertex of the service order workflow graph.
type OrderStatus int

const (
	StatusUnknown OrderStatus = iota
	StatusPending
	StatusUnderReview
	StatusApproved
	StatusRejected
	StatusPlanned
	StatusAwaitingProcurement
	StatusContracted
	StatusInProgress
	StatusAwaitingMaterial
	StatusCompleted
	StatusCancelled

	statusCount
)

var statusCodes = [...]string{
	StatusUnknown:             "",
	StatusPending:             "PENDING",
	StatusUnderReview:         "UNDER_REVIEW",
	StatusApproved:            "APPROVED",
	StatusRejected:            "REJECTED",
	StatusPlanned:             "PLANNED",
	StatusAwaitingProcurement: "AWAITING_PROCUREMENT",
	StatusContracted:          "CONTRACTED",
	StatusInProgress:          "IN_PROGRESS",
	StatusAwaitingMaterial:    "AWAITING_MATERIAL",
	StatusCompleted:           "COMPLETED",
	StatusCancelled:           "CANCELLED",
}

var _ [statusCount]struct{} = [len(statusCodes)]struct{}{}

var statusesByCode = func() map[string]OrderStatus {
	m := make(map[string]OrderStatus, statusCount)
	for s := StatusPending; s < statusCount; s++ {
		m[statusCodes[s]] = s
	}
	return m
}()

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []OrderStatus {
	out := make([]OrderStatus, 0, statusCount-1)
	for s := StatusPending; s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s OrderStatus) IsValid() bool { return s > StatusUnknown && s < statusCount }

// IsFinal reports whether no further work is expected on an order in s.
func (s OrderStatus) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return statusCodes[s]
}

func ParseStatus(code string) (OrderStatus, error) {
	if s, ok := statusesByCode[code]; ok {
		return s, nil
	}
	return StatusUnknown, newValidationError("status", code)
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, newValidationError("status", s.String())
	}
	return []byte(statusCodes[s]), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *OrderStatus) Scan(src any) error {
	code, err := scanCode("status", src)
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(code))
}

func (s OrderStatus) Value() (driver.Value, error) {
	b, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type statusSet uint16

func statusesOf(statuses ...OrderStatus) statusSet {
	var set statusSet
	for _, s := range statuses {
		set |= 1 << uint(s)
	}
	return set
}

func (set statusSet) has(s OrderStatus) bool {
	return s.IsValid() && set&(1<<uint(s)) != 0
}

func (set statusSet) list() []OrderStatus {
	var out []OrderStatus
	for s := StatusPending; s < statusCount; s++ {
		if set.has(s) {
			out = append(out, s)
		}
	}
	return out
}

// scanCode accepts the text representations pgx and database/sql hand to Scan.
func scanCode(kind string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", newValidationError(kind, "NULL")
	default:
		return "", newValidationError(kind, fmt.Sprintf("%v", v))
	}
}

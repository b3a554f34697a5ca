package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"vessel-orders/internal/authz"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type SolutionType string

const (
	SolutionInternal   SolutionType = "INTERNAL"
	SolutionOutsourced SolutionType = "OUTSOURCED"
)

func (s SolutionType) IsValid() bool {
	return s == SolutionInternal || s == SolutionOutsourced
}

type ServiceOrder struct {
	ID             uuid.UUID         `db:"id"`
	Title          string            `db:"title"`
	Description    null.String       `db:"description"`
	ScopeOfService null.String       `db:"scope_of_service"`
	Ship           string            `db:"ship"`
	Location       null.String       `db:"location"`
	Priority       Priority          `db:"priority"`
	Status         authz.OrderStatus `db:"status"`
	CreatedByID    uuid.UUID         `db:"created_by_id"`
	AssignedToID   uuid.NullUUID     `db:"assigned_to_id"`
	RequestedAt    time.Time         `db:"requested_at"`
	DueDate        null.Time         `db:"due_date"`
	CompletedAt    null.Time         `db:"completed_at"`

	PlannedStartDate null.Time   `db:"planned_start_date"`
	PlannedEndDate   null.Time   `db:"planned_end_date"`
	SolutionType     null.String `db:"solution_type"`
	ResponsibleCrew  null.String `db:"responsible_crew"`
	CoordinatorNotes null.String `db:"coordinator_notes"`

	ContractedCompany null.String  `db:"contracted_company"`
	ContractDate      null.Time    `db:"contract_date"`
	ServiceOrderCost  null.Float64 `db:"service_order_cost"`
	SupplierNotes     null.String  `db:"supplier_notes"`

	ReportAttachments []string  `db:"report_attachments"`
	OverdueNotified   bool      `db:"overdue_notified"`
	UpdatedAt         time.Time `db:"updated_at"`

	CreatedBy  *UserRef
	AssignedTo *UserRef
}

func (o *ServiceOrder) Snapshot() authz.OrderSnapshot {
	return authz.OrderSnapshot{
		ID:          o.ID.String(),
		Status:      o.Status,
		CreatedByID: o.CreatedByID.String(),
	}
}

// IsOverdue reports whether the due date has passed while work is still open.
func (o *ServiceOrder) IsOverdue(now time.Time) bool {
	return o.DueDate.Valid && o.DueDate.Time.Before(now) && !o.Status.IsFinal()
}

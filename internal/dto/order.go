package dto

import (
	"time"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/entities"
)

type UserRefDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderDTO struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	ScopeOfService *string           `json:"scopeOfService"`
	Ship           string            `json:"ship"`
	Location       *string           `json:"location"`
	Priority       string            `json:"priority"`
	Status         authz.OrderStatus `json:"status"`
	CreatedByID    string            `json:"createdById"`
	CreatedBy      *UserRefDTO       `json:"createdBy,omitempty"`
	AssignedToID   *string           `json:"assignedToId"`
	AssignedTo     *UserRefDTO       `json:"assignedTo,omitempty"`
	RequestedAt    time.Time         `json:"requestedAt"`
	DueDate        *time.Time        `json:"dueDate"`
	CompletedAt    *time.Time        `json:"completedAt"`

	PlannedStartDate *time.Time `json:"plannedStartDate"`
	PlannedEndDate   *time.Time `json:"plannedEndDate"`
	SolutionType     *string    `json:"solutionType"`
	ResponsibleCrew  *string    `json:"responsibleCrew"`
	CoordinatorNotes *string    `json:"coordinatorNotes"`

	ContractedCompany *string    `json:"contractedCompany"`
	ContractDate      *time.Time `json:"contractDate"`
	ServiceOrderCost  *float64   `json:"serviceOrderCost"`
	SupplierNotes     *string    `json:"supplierNotes"`

	ReportAttachments []string  `json:"reportAttachments"`
	Overdue           bool      `json:"overdue"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func refDTO(r *entities.UserRef) *UserRefDTO {
	if r == nil {
		return nil
	}
	return &UserRefDTO{ID: r.ID.String(), Name: r.Name, Email: r.Email}
}

func NewOrderDTO(o *entities.ServiceOrder, now time.Time) OrderDTO {
	out := OrderDTO{
		ID:                o.ID.String(),
		Title:             o.Title,
		Description:       o.Description.Ptr(),
		ScopeOfService:    o.ScopeOfService.Ptr(),
		Ship:              o.Ship,
		Location:          o.Location.Ptr(),
		Priority:          string(o.Priority),
		Status:            o.Status,
		CreatedByID:       o.CreatedByID.String(),
		CreatedBy:         refDTO(o.CreatedBy),
		AssignedTo:        refDTO(o.AssignedTo),
		RequestedAt:       o.RequestedAt,
		DueDate:           o.DueDate.Ptr(),
		CompletedAt:       o.CompletedAt.Ptr(),
		PlannedStartDate:  o.PlannedStartDate.Ptr(),
		PlannedEndDate:    o.PlannedEndDate.Ptr(),
		SolutionType:      o.SolutionType.Ptr(),
		ResponsibleCrew:   o.ResponsibleCrew.Ptr(),
		CoordinatorNotes:  o.CoordinatorNotes.Ptr(),
		ContractedCompany: o.ContractedCompany.Ptr(),
		ContractDate:      o.ContractDate.Ptr(),
		ServiceOrderCost:  o.ServiceOrderCost.Ptr(),
		SupplierNotes:     o.SupplierNotes.Ptr(),
		ReportAttachments: o.ReportAttachments,
		Overdue:           o.IsOverdue(now),
		UpdatedAt:         o.UpdatedAt,
	}
	if o.AssignedToID.Valid {
		id := o.AssignedToID.UUID.String()
		out.AssignedToID = &id
	}
	if out.ReportAttachments == nil {
		out.ReportAttachments = []string{}
	}
	return out
}

type CreateOrderDTO struct {
	Title          string     `json:"title" validate:"required,min=3,max=255"`
	Description    *string    `json:"description"`
	ScopeOfService *string    `json:"scopeOfService"`
	Ship           string     `json:"ship" validate:"required"`
	Location       *string    `json:"location"`
	Priority       string     `json:"priority" validate:"required,priority"`
	AssignedToID   *string    `json:"assignedToId" validate:"omitempty,uuid"`
	DueDate        *time.Time `json:"dueDate"`
}

// UpdateOrderDTO is a partial update: nil fields are left unchanged.
type UpdateOrderDTO struct {
	Title          *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description    *string    `json:"description"`
	ScopeOfService *string    `json:"scopeOfService"`
	Ship           *string    `json:"ship" validate:"omitempty,min=1"`
	Location       *string    `json:"location"`
	Priority       *string    `json:"priority" validate:"omitempty,priority"`
	AssignedToID   *string    `json:"assignedToId" validate:"omitempty,uuid"`
	DueDate        *time.Time `json:"dueDate"`
	Status         *string    `json:"status" validate:"omitempty,order_status"`
	CompletedAt    *time.Time `json:"completedAt"`
	Comment        *string    `json:"comment" validate:"omitempty,max=1000"`

	PlannedStartDate *time.Time `json:"plannedStartDate"`
	PlannedEndDate   *time.Time `json:"plannedEndDate"`
	SolutionType     *string    `json:"solutionType" validate:"omitempty,oneof=INTERNAL OUTSOURCED"`
	ResponsibleCrew  *string    `json:"responsibleCrew"`
	CoordinatorNotes *string    `json:"coordinatorNotes"`

	ContractedCompany *string    `json:"contractedCompany"`
	ContractDate      *time.Time `json:"contractDate"`
	ServiceOrderCost  *float64   `json:"serviceOrderCost" validate:"omitempty,min=0"`
	SupplierNotes     *string    `json:"supplierNotes"`

	ReportAttachments []string `json:"reportAttachments" validate:"omitempty,dive,startswith=/uploads/"`
}

type OrderFilter struct {
	Search   string
	Status   authz.OrderStatus
	Priority entities.Priority
	Limit    uint64
	Offset   uint64
}

type OrderHistoryDTO struct {
	FromStatus authz.OrderStatus `json:"fromStatus"`
	ToStatus   authz.OrderStatus `json:"toStatus"`
	ChangedBy  *string           `json:"changedBy"`
	Comment    *string           `json:"comment"`
	ChangedAt  time.Time         `json:"changedAt"`
}

func NewOrderHistoryDTO(h *entities.OrderHistory) OrderHistoryDTO {
	out := OrderHistoryDTO{
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		Comment:    h.Comment.Ptr(),
		ChangedAt:  h.ChangedAt,
	}
	if h.ChangedBy.Valid {
		id := h.ChangedBy.UUID.String()
		out.ChangedBy = &id
	}
	return out
}

type TransitionsDTO struct {
	Current authz.OrderStatus   `json:"current"`
	Allowed []authz.OrderStatus `json:"allowed"`
}

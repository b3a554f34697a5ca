package services

import (
	"slices"
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	apperrors "vessel-orders/pkg/errors"
)

// patchString applies an optional string; an empty string clears the value.
func patchString(dst *null.String, v *string) bool {
	if v == nil {
		return false
	}
	next := null.StringFrom(strings.TrimSpace(*v))
	if next.String == "" {
		next = null.String{}
	}
	if next.Valid == dst.Valid && next.String == dst.String {
		return false
	}
	*dst = next
	return true
}

func patchTime(dst *null.Time, v *time.Time) bool {
	if v == nil {
		return false
	}
	if dst.Valid && dst.Time.Equal(*v) {
		return false
	}
	*dst = null.TimeFrom(*v)
	return true
}

func patchFloat(dst *null.Float64, v *float64) bool {
	if v == nil {
		return false
	}
	if dst.Valid && dst.Float64 == *v {
		return false
	}
	*dst = null.Float64From(*v)
	return true
}

// applyOrderPatch returns a copy of order with the payload applied and the
// restricted fields whose value changed.
func applyOrderPatch(order *entities.ServiceOrder, p dto.UpdateOrderDTO) (*entities.ServiceOrder, []authz.FieldName, error) {
	next := *order
	next.ReportAttachments = slices.Clone(order.ReportAttachments)

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, nil, apperrors.NewInvalidInputError("title must not be empty")
		}
		next.Title = title
	}
	if p.Ship != nil {
		ship := strings.TrimSpace(*p.Ship)
		if ship == "" {
			return nil, nil, apperrors.NewInvalidInputError("ship must not be empty")
		}
		next.Ship = ship
	}
	patchString(&next.Description, p.Description)
	patchString(&next.ScopeOfService, p.ScopeOfService)
	patchString(&next.Location, p.Location)
	patchTime(&next.DueDate, p.DueDate)

	if p.Priority != nil {
		priority := entities.Priority(strings.ToUpper(*p.Priority))
		if !priority.IsValid() {
			return nil, nil, apperrors.NewInvalidInputError("unknown priority %q", *p.Priority)
		}
		next.Priority = priority
	}
	if p.AssignedToID != nil {
		assignee, err := parseOptionalUUID(p.AssignedToID)
		if err != nil {
			return nil, nil, err
		}
		next.AssignedToID = assignee
		next.AssignedTo = nil
	}
	if p.Status != nil {
		status, err := authz.ParseStatus(strings.ToUpper(*p.Status))
		if err != nil {
			return nil, nil, apperrors.NewInvalidInputError("unknown status %q", *p.Status)
		}
		next.Status = status
	}
	if p.ReportAttachments != nil {
		next.ReportAttachments = slices.Clone(p.ReportAttachments)
	}

	if p.SolutionType != nil && *p.SolutionType != "" && !entities.SolutionType(*p.SolutionType).IsValid() {
		return nil, nil, apperrors.NewInvalidInputError("unknown solution type %q", *p.SolutionType)
	}

	var touched []authz.FieldName
	mark := func(changed bool, field authz.FieldName) {
		if changed {
			touched = append(touched, field)
		}
	}
	mark(patchTime(&next.PlannedStartDate, p.PlannedStartDate), authz.FieldPlannedStartDate)
	mark(patchTime(&next.PlannedEndDate, p.PlannedEndDate), authz.FieldPlannedEndDate)
	mark(patchString(&next.SolutionType, p.SolutionType), authz.FieldSolutionType)
	mark(patchString(&next.ResponsibleCrew, p.ResponsibleCrew), authz.FieldResponsibleCrew)
	mark(patchString(&next.CoordinatorNotes, p.CoordinatorNotes), authz.FieldCoordinatorNotes)
	mark(patchString(&next.ContractedCompany, p.ContractedCompany), authz.FieldContractedCompany)
	mark(patchTime(&next.ContractDate, p.ContractDate), authz.FieldContractDate)
	mark(patchFloat(&next.ServiceOrderCost, p.ServiceOrderCost), authz.FieldServiceOrderCost)
	mark(patchString(&next.SupplierNotes, p.SupplierNotes), authz.FieldSupplierNotes)

	if next.PlannedStartDate.Valid && next.PlannedEndDate.Valid && next.PlannedEndDate.Time.Before(next.PlannedStartDate.Time) {
		return nil, nil, apperrors.NewInvalidInputError("planned end date is before planned start date")
	}
	return &next, touched, nil
}

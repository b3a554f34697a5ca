package dto

import "vessel-orders/internal/authz"

type DashboardPreferenceDTO struct {
	VisibleStatuses []authz.OrderStatus `json:"visibleStatuses" validate:"required,min=1,max=20"`
}

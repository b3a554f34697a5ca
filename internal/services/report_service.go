package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
)

// reportPageSize bounds a single repository read while building a report.
const reportPageSize = 500

const reportSheet = "Service orders"

var reportHeaders = []any{
	"ID", "Title", "Ship", "Location", "Priority", "Status", "Requested by", "Assigned to",
	"Requested at", "Due date", "Completed at", "Overdue", "Solution type", "Contracted company",
	"Cost",
}

type ReportServiceInterface interface {
	WriteOrdersReport(ctx context.Context, filter dto.OrderFilter, w io.Writer) error
}

type ReportService struct {
	orderRepo repositories.ServiceOrderRepositoryInterface
	engine    *authz.Engine
	identity  *IdentityLoader
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(
	orderRepo repositories.ServiceOrderRepositoryInterface,
	engine *authz.Engine,
	identity *IdentityLoader,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{orderRepo: orderRepo, engine: engine, identity: identity, logger: logger, now: time.Now}
}

// WriteOrdersReport renders every order matching filter as an xlsx workbook.
// Limit and Offset of filter are ignored.
func (s *ReportService) WriteOrdersReport(ctx context.Context, filter dto.OrderFilter, w io.Writer) error {
	id, err := s.identity.IdentityFor(ctx)
	if err != nil {
		return err
	}
	if err := s.engine.CanView(id).Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "O1", style); err != nil {
		return err
	}

	now := s.now()
	row := 2
	filter.Offset = 0
	filter.Limit = reportPageSize
	for {
		orders, _, err := s.orderRepo.GetOrders(ctx, filter)
		if err != nil {
			return err
		}
		for i := range orders {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := reportRow(&orders[i], now)
			if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
		if len(orders) < reportPageSize {
			break
		}
		filter.Offset += reportPageSize
	}

	_ = f.SetColWidth(reportSheet, "B", "B", 40)
	_ = f.SetColWidth(reportSheet, "C", "D", 20)
	_ = f.SetColWidth(reportSheet, "G", "H", 25)
	_ = f.SetColWidth(reportSheet, "I", "K", 18)

	s.logger.Info("orders report generated", zap.String("userID", id.ID), zap.Int("rows", row-2))
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func reportRow(o *entities.ServiceOrder, now time.Time) []any {
	var requestedBy, assignedTo string
	if o.CreatedBy != nil {
		requestedBy = o.CreatedBy.Name
	}
	if o.AssignedTo != nil {
		assignedTo = o.AssignedTo.Name
	}
	overdue := "no"
	if o.IsOverdue(now) {
		overdue = "yes"
	}
	var cost any = ""
	if o.ServiceOrderCost.Valid {
		cost = o.ServiceOrderCost.Float64
	}
	return []any{
		o.ID.String(), o.Title, o.Ship, o.Location.String, string(o.Priority), o.Status.String(),
		requestedBy, assignedTo, formatTime(&o.RequestedAt), formatTime(o.DueDate.Ptr()),
		formatTime(o.CompletedAt.Ptr()), overdue, o.SolutionType.String, o.ContractedCompany.String, cost,
	}
}

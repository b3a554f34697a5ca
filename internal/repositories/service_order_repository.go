package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	apperrors "vessel-orders/pkg/errors"
)

const orderTable = "service_orders AS o"

var orderColumns = []string{
	"o.id", "o.title", "o.description", "o.scope_of_service", "o.ship", "o.location",
	"o.priority", "o.status", "o.created_by_id", "o.assigned_to_id", "o.requested_at",
	"o.due_date", "o.completed_at", "o.planned_start_date", "o.planned_end_date",
	"o.solution_type", "o.responsible_crew", "o.coordinator_notes", "o.contracted_company",
	"o.contract_date", "o.service_order_cost::float8", "o.supplier_notes",
	"o.report_attachments", "o.overdue_notified", "o.updated_at",
	"creator.name", "creator.email",
	"COALESCE(assignee.name, '')", "COALESCE(assignee.email, '')",
}

type ServiceOrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order *entities.ServiceOrder) error
	FindOrder(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error)
	// FindForUpdate locks the row until tx ends.
	FindForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error)
	GetOrders(ctx context.Context, filter dto.OrderFilter) ([]entities.ServiceOrder, uint64, error)
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *entities.ServiceOrder) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	ListOverdue(ctx context.Context, now time.Time) ([]entities.ServiceOrder, error)
	MarkOverdueNotified(ctx context.Context, ids []uuid.UUID) error
}

type ServiceOrderRepository struct {
	storage *pgxpool.Pool
	psql    sq.StatementBuilderType
}

func NewServiceOrderRepository(storage *pgxpool.Pool) ServiceOrderRepositoryInterface {
	return &ServiceOrderRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ServiceOrderRepository) baseSelect() sq.SelectBuilder {
	return r.psql.Select(orderColumns...).
		From(orderTable).
		Join("users creator ON creator.id = o.created_by_id").
		LeftJoin("users assignee ON assignee.id = o.assigned_to_id")
}

func scanOrder(row pgx.Row) (*entities.ServiceOrder, error) {
	var (
		o                           entities.ServiceOrder
		creatorName, creatorEmail   string
		assigneeName, assigneeEmail string
	)
	err := row.Scan(
		&o.ID, &o.Title, &o.Description, &o.ScopeOfService, &o.Ship, &o.Location,
		&o.Priority, &o.Status, &o.CreatedByID, &o.AssignedToID, &o.RequestedAt,
		&o.DueDate, &o.CompletedAt, &o.PlannedStartDate, &o.PlannedEndDate,
		&o.SolutionType, &o.ResponsibleCrew, &o.CoordinatorNotes, &o.ContractedCompany,
		&o.ContractDate, &o.ServiceOrderCost, &o.SupplierNotes,
		&o.ReportAttachments, &o.OverdueNotified, &o.UpdatedAt,
		&creatorName, &creatorEmail, &assigneeName, &assigneeEmail,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	o.CreatedBy = &entities.UserRef{ID: o.CreatedByID, Name: creatorName, Email: creatorEmail}
	if o.AssignedToID.Valid {
		o.AssignedTo = &entities.UserRef{ID: o.AssignedToID.UUID, Name: assigneeName, Email: assigneeEmail}
	}
	return &o, nil
}

func (r *ServiceOrderRepository) CreateOrder(ctx context.Context, order *entities.ServiceOrder) error {
	if order.ReportAttachments == nil {
		order.ReportAttachments = []string{}
	}
	query, args, err := r.psql.Insert("service_orders").
		Columns(
			"title", "description", "scope_of_service", "ship", "location", "priority",
			"status", "created_by_id", "assigned_to_id", "due_date", "report_attachments",
		).
		Values(
			order.Title, order.Description, order.ScopeOfService, order.Ship, order.Location, string(order.Priority),
			order.Status.String(), order.CreatedByID, order.AssignedToID, order.DueDate, order.ReportAttachments,
		).
		Suffix("RETURNING id, requested_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&order.ID, &order.RequestedAt, &order.UpdatedAt)
	return mapPgError(err)
}

func (r *ServiceOrderRepository) FindOrder(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.storage.QueryRow(ctx, query, args...))
}

func (r *ServiceOrderRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"o.id": id}).Suffix("FOR UPDATE OF o").ToSql()
	if err != nil {
		return nil, err
	}
	return scanOrder(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func applyOrderFilter(b sq.SelectBuilder, filter dto.OrderFilter) sq.SelectBuilder {
	if filter.Search != "" {
		pat := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"o.title": pat},
			sq.ILike{"o.ship": pat},
			sq.ILike{"o.description": pat},
		})
	}
	if filter.Status.IsValid() {
		b = b.Where(sq.Eq{"o.status": filter.Status.String()})
	}
	if filter.Priority.IsValid() {
		b = b.Where(sq.Eq{"o.priority": string(filter.Priority)})
	}
	return b
}

func (r *ServiceOrderRepository) GetOrders(ctx context.Context, filter dto.OrderFilter) ([]entities.ServiceOrder, uint64, error) {
	countQuery, countArgs, err := applyOrderFilter(r.psql.Select("COUNT(*)").From(orderTable), filter).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count service orders: %w", err)
	}
	if total == 0 {
		return []entities.ServiceOrder{}, 0, nil
	}

	b := applyOrderFilter(r.baseSelect(), filter).OrderBy("o.requested_at DESC", "o.id")
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit).Offset(filter.Offset)
	}
	orders, err := r.query(ctx, b)
	return orders, total, err
}

func (r *ServiceOrderRepository) query(ctx context.Context, b sq.SelectBuilder) ([]entities.ServiceOrder, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query service orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.ServiceOrder, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *ServiceOrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *entities.ServiceOrder) error {
	if order.ReportAttachments == nil {
		order.ReportAttachments = []string{}
	}
	query, args, err := r.psql.Update("service_orders").
		SetMap(map[string]interface{}{
			"title":              order.Title,
			"description":        order.Description,
			"scope_of_service":   order.ScopeOfService,
			"ship":               order.Ship,
			"location":           order.Location,
			"priority":           string(order.Priority),
			"status":             order.Status.String(),
			"assigned_to_id":     order.AssignedToID,
			"due_date":           order.DueDate,
			"completed_at":       order.CompletedAt,
			"planned_start_date": order.PlannedStartDate,
			"planned_end_date":   order.PlannedEndDate,
			"solution_type":      order.SolutionType,
			"responsible_crew":   order.ResponsibleCrew,
			"coordinator_notes":  order.CoordinatorNotes,
			"contracted_company": order.ContractedCompany,
			"contract_date":      order.ContractDate,
			"service_order_cost": order.ServiceOrderCost,
			"supplier_notes":     order.SupplierNotes,
			"report_attachments": order.ReportAttachments,
			"overdue_notified":   order.OverdueNotified,
			"updated_at":         sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": order.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return mapPgError(pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&order.UpdatedAt))
}

func (r *ServiceOrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM service_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListOverdue returns open orders past their due date that have not been
// reported yet.
func (r *ServiceOrderRepository) ListOverdue(ctx context.Context, now time.Time) ([]entities.ServiceOrder, error) {
	b := r.baseSelect().
		Where(sq.Lt{"o.due_date": now}).
		Where(sq.NotEq{"o.status": []string{authz.StatusCompleted.String(), authz.StatusCancelled.String()}}).
		Where(sq.Eq{"o.overdue_notified": false}).
		OrderBy("o.due_date ASC")
	return r.query(ctx, b)
}

func (r *ServiceOrderRepository) MarkOverdueNotified(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := r.psql.Update("service_orders").
		Set("overdue_notified", true).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.storage.Exec(ctx, query, args...)
	return err
}

//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/database/postgresql"
	apperrors "vessel-orders/pkg/errors"
)

// RepositoryIntegrationTestSuite runs the repositories against a migrated
// PostgreSQL container.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool

	users   repositories.UserRepositoryInterface
	orders  repositories.ServiceOrderRepositoryInterface
	history repositories.OrderHistoryRepositoryInterface
	prefs   repositories.PreferenceRepositoryInterface
	tx      repositories.TxManagerInterface
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("vessel_orders"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = postgresql.ConnectDB(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(postgresql.Migrate(ctx, s.pool, postgresql.MigrateUp))

	s.users = repositories.NewUserRepository(s.pool)
	s.orders = repositories.NewServiceOrderRepository(s.pool)
	s.history = repositories.NewOrderHistoryRepository(s.pool)
	s.prefs = repositories.NewPreferenceRepository(s.pool)
	s.tx = repositories.NewTxManager(s.pool)
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE TABLE order_status_history, service_orders, dashboard_preferences, users CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) createUser(email string, role authz.Role, sector authz.Sector) *entities.User {
	u := &entities.User{Name: email, Email: email, PasswordHash: "x", Role: role, Sector: sector}
	s.Require().NoError(s.users.CreateUser(context.Background(), u))
	return u
}

func (s *RepositoryIntegrationTestSuite) createOrder(creator *entities.User, title string) *entities.ServiceOrder {
	o := &entities.ServiceOrder{
		Title:       title,
		Ship:        "Star Aurora",
		Priority:    entities.PriorityHigh,
		Status:      authz.StatusPending,
		CreatedByID: creator.ID,
	}
	s.Require().NoError(s.orders.CreateOrder(context.Background(), o))
	return o
}

func (s *RepositoryIntegrationTestSuite) TestUsers() {
	ctx := context.Background()
	u := s.createUser("Ana.Souza@starnav.com.br", authz.RoleChiefEngineer, authz.SectorCrew)

	found, err := s.users.FindByEmail(ctx, "ana.souza@starnav.com.br")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal(authz.RoleChiefEngineer, found.Role)
	s.Equal(authz.SectorCrew, found.Sector)

	dup := &entities.User{Name: "x", Email: "ana.souza@starnav.com.br", PasswordHash: "x", Role: authz.RoleCommon, Sector: authz.SectorHR}
	s.ErrorIs(s.users.CreateUser(ctx, dup), apperrors.ErrConflict)

	list, total, err := s.users.GetUsers(ctx, dto.UserFilter{Sector: authz.SectorCrew, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(list, 1)

	s.Require().NoError(s.users.DeleteUser(ctx, u.ID))
	_, err = s.users.FindByID(ctx, u.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestOrderLifecycle() {
	ctx := context.Background()
	creator := s.createUser("carla@starnav.com.br", authz.RoleChiefEngineer, authz.SectorCrew)
	coordinator := s.createUser("paulo@starnav.com.br", authz.RoleCoordinator, authz.SectorMaintenance)
	order := s.createOrder(creator, "Replace bilge pump")

	err := s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orders.FindForUpdate(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		from := locked.Status
		locked.Status = authz.StatusUnderReview
		locked.AssignedToID = uuid.NullUUID{UUID: coordinator.ID, Valid: true}
		locked.ServiceOrderCost = null.Float64From(1250.5)
		if err := s.orders.UpdateOrder(ctx, tx, locked); err != nil {
			return err
		}
		return s.history.AddStatusChange(ctx, tx, &entities.OrderHistory{
			OrderID:    locked.ID,
			FromStatus: from,
			ToStatus:   locked.Status,
			ChangedBy:  uuid.NullUUID{UUID: coordinator.ID, Valid: true},
			Comment:    null.StringFrom("triaged"),
		})
	})
	s.Require().NoError(err)

	got, err := s.orders.FindOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(authz.StatusUnderReview, got.Status)
	s.Require().NotNil(got.AssignedTo)
	s.Equal("paulo@starnav.com.br", got.AssignedTo.Email)
	s.Equal(1250.5, got.ServiceOrderCost.Float64)
	s.Equal("carla@starnav.com.br", got.CreatedBy.Email)

	history, err := s.history.GetByOrderID(ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(authz.StatusPending, history[0].FromStatus)
	s.Equal(authz.StatusUnderReview, history[0].ToStatus)

	list, total, err := s.orders.GetOrders(ctx, dto.OrderFilter{Status: authz.StatusUnderReview, Search: "bilge", Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(list, 1)

	s.Require().NoError(s.orders.DeleteOrder(ctx, order.ID))
	s.ErrorIs(s.orders.DeleteOrder(ctx, order.ID), apperrors.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestRollbackOnError() {
	ctx := context.Background()
	order := s.createOrder(s.createUser("carla@starnav.com.br", authz.RoleChiefEngineer, authz.SectorCrew), "Paint hull")

	err := s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.orders.FindForUpdate(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		locked.Status = authz.StatusCancelled
		if err := s.orders.UpdateOrder(ctx, tx, locked); err != nil {
			return err
		}
		return apperrors.ErrForbidden
	})
	s.ErrorIs(err, apperrors.ErrForbidden)

	got, err := s.orders.FindOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(authz.StatusPending, got.Status)
}

func (s *RepositoryIntegrationTestSuite) TestOverdue() {
	ctx := context.Background()
	creator := s.createUser("carla@starnav.com.br", authz.RoleChiefEngineer, authz.SectorCrew)
	now := time.Now()

	late := s.createOrder(creator, "Late order")
	late.DueDate = null.TimeFrom(now.Add(-time.Hour))
	done := s.createOrder(creator, "Done order")
	done.DueDate = null.TimeFrom(now.Add(-time.Hour))
	done.Status = authz.StatusCompleted
	future := s.createOrder(creator, "Future order")
	future.DueDate = null.TimeFrom(now.Add(time.Hour))

	s.Require().NoError(s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, o := range []*entities.ServiceOrder{late, done, future} {
			if err := s.orders.UpdateOrder(ctx, tx, o); err != nil {
				return err
			}
		}
		return nil
	}))

	overdue, err := s.orders.ListOverdue(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(late.ID, overdue[0].ID)

	s.Require().NoError(s.orders.MarkOverdueNotified(ctx, []uuid.UUID{late.ID}))
	overdue, err = s.orders.ListOverdue(ctx, now)
	s.Require().NoError(err)
	s.Empty(overdue)
}

func (s *RepositoryIntegrationTestSuite) TestPreferences() {
	ctx := context.Background()
	u := s.createUser("carla@starnav.com.br", authz.RoleChiefEngineer, authz.SectorCrew)

	_, err := s.prefs.Get(ctx, u.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	pref := &entities.DashboardPreference{UserID: u.ID, VisibleStatuses: []authz.OrderStatus{authz.StatusPending, authz.StatusInProgress}}
	s.Require().NoError(s.prefs.Upsert(ctx, pref))
	pref.VisibleStatuses = []authz.OrderStatus{authz.StatusCompleted}
	s.Require().NoError(s.prefs.Upsert(ctx, pref))

	got, err := s.prefs.Get(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal([]authz.OrderStatus{authz.StatusCompleted}, got.VisibleStatuses)
}

func TestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	apperrors "vessel-orders/pkg/errors"
)

func TestReportService_WriteOrdersReport(t *testing.T) {
	f := newOrderFixture(t)
	late := f.seed(authz.StatusInProgress, f.engineer)
	late.DueDate = null.TimeFrom(testNow.Add(-24 * time.Hour))
	late.ServiceOrderCost = null.Float64From(900)
	late.CreatedBy = &entities.UserRef{ID: f.engineer.ID, Name: f.engineer.Name}
	f.seed(authz.StatusCompleted, f.engineer)

	svc := NewReportService(f.orders, authz.NewEngine(testDomain), NewIdentityLoader(f.users), zap.NewNop())
	svc.now = func() time.Time { return testNow }

	var buf bytes.Buffer
	require.NoError(t, svc.WriteOrdersReport(asUser(f.coordinator), dto.OrderFilter{Status: authz.StatusInProgress}, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, late.ID.String(), rows[1][0])
	assert.Equal(t, "IN_PROGRESS", rows[1][5])
	assert.Equal(t, f.engineer.Name, rows[1][6])
	assert.Equal(t, "yes", rows[1][11])
	assert.Equal(t, "900", rows[1][14])

	err = svc.WriteOrdersReport(asUser(f.clerk), dto.OrderFilter{}, &bytes.Buffer{})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

package authz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel-orders/internal/authz"
	apperrors "vessel-orders/pkg/errors"
)

func TestGraph(t *testing.T) {
	t.Run("has no self loops", func(t *testing.T) {
		for _, s := range authz.AllStatuses() {
			assert.False(t, authz.HasEdge(s, s), s.String())
		}
	})

	t.Run("only cancelled and rejected re-enter pending", func(t *testing.T) {
		var into []authz.OrderStatus
		for _, s := range authz.AllStatuses() {
			if authz.HasEdge(s, authz.StatusPending) {
				into = append(into, s)
			}
		}
		assert.ElementsMatch(t, []authz.OrderStatus{authz.StatusCancelled, authz.StatusRejected}, into)
	})

	t.Run("edges", func(t *testing.T) {
		want := map[authz.OrderStatus][]authz.OrderStatus{
			authz.StatusPending:             {authz.StatusUnderReview, authz.StatusRejected},
			authz.StatusUnderReview:         {authz.StatusApproved, authz.StatusRejected, authz.StatusPlanned},
			authz.StatusApproved:            {authz.StatusPlanned, authz.StatusInProgress},
			authz.StatusPlanned:             {authz.StatusAwaitingProcurement, authz.StatusInProgress},
			authz.StatusAwaitingProcurement: {authz.StatusContracted, authz.StatusAwaitingMaterial, authz.StatusCancelled},
			authz.StatusContracted:          {authz.StatusInProgress, authz.StatusCancelled},
			authz.StatusInProgress:          {authz.StatusCompleted, authz.StatusAwaitingMaterial, authz.StatusCancelled},
			authz.StatusAwaitingMaterial:    {authz.StatusInProgress, authz.StatusCancelled},
			authz.StatusCompleted:           {authz.StatusApproved, authz.StatusCancelled},
			authz.StatusCancelled:           {authz.StatusPending},
			authz.StatusRejected:            {authz.StatusPending},
		}
		for from, to := range want {
			assert.ElementsMatch(t, to, authz.Successors(from), from.String())
		}
	})
}

func TestValidateTransition_SelfIsAlwaysAllowed(t *testing.T) {
	ids := []authz.Identity{
		identity(authz.RoleAdmin, authz.SectorAdministration),
		identity(authz.RoleBuyerJunior, authz.SectorProcurement),
		identity(authz.RoleIntern, authz.SectorHR),
		identity(authz.RoleUnknown, authz.SectorUnknown),
	}
	for _, s := range authz.AllStatuses() {
		for _, id := range ids {
			assert.True(t, authz.ValidateTransition(s, s, id).Allowed(), "%s by %s", s, id.Role)
		}
	}
}

func TestValidateTransition_OffGraphDeniedForEveryone(t *testing.T) {
	ids := []authz.Identity{
		identity(authz.RoleAdmin, authz.SectorAdministration),
		identity(authz.RoleCoordinator, authz.SectorMaintenance),
		identity(authz.RoleBuyerSenior, authz.SectorProcurement),
		identity(authz.RoleChiefEngineer, authz.SectorCrew),
	}
	for _, from := range authz.AllStatuses() {
		for _, to := range authz.AllStatuses() {
			if from == to || authz.HasEdge(from, to) {
				continue
			}
			for _, id := range ids {
				res := authz.ValidateTransition(from, to, id)
				assert.Equal(t, authz.Denied, res.Verdict, "%s->%s by %s", from, to, id.Role)
				assert.Equal(t, authz.ReasonIllegalTransition, res.Reason)
			}
		}
	}
}

func TestValidateTransition_AdminFollowsGraph(t *testing.T) {
	admin := identity(authz.RoleAdmin, authz.SectorAdministration)
	for _, from := range authz.AllStatuses() {
		for _, to := range authz.Successors(from) {
			assert.True(t, authz.ValidateTransition(from, to, admin).Allowed(), "%s->%s", from, to)
		}
	}
}

func TestValidateTransition_Sectors(t *testing.T) {
	tests := []struct {
		name     string
		id       authz.Identity
		from, to authz.OrderStatus
		want     authz.Verdict
	}{
		{"buyer contracts", identity(authz.RoleBuyerSenior, authz.SectorProcurement), authz.StatusAwaitingProcurement, authz.StatusContracted, authz.Allowed},
		{"buyer cannot review", identity(authz.RoleBuyerSenior, authz.SectorProcurement), authz.StatusPending, authz.StatusUnderReview, authz.Denied},
		{"buyer cancels contracted", identity(authz.RoleBuyerMid, authz.SectorProcurement), authz.StatusContracted, authz.StatusCancelled, authz.Allowed},
		{"buyer starts contracted work", identity(authz.RoleBuyerJunior, authz.SectorProcurement), authz.StatusContracted, authz.StatusInProgress, authz.Allowed},
		{"buyer cannot complete", identity(authz.RoleBuyerJunior, authz.SectorProcurement), authz.StatusInProgress, authz.StatusCompleted, authz.Denied},
		{"crew submits for review", identity(authz.RoleChiefEngineer, authz.SectorCrew), authz.StatusPending, authz.StatusUnderReview, authz.Allowed},
		{"crew completes", identity(authz.RoleFirstOfficer, authz.SectorCrew), authz.StatusInProgress, authz.StatusCompleted, authz.Allowed},
		{"crew awaits material", identity(authz.RoleFirstOfficer, authz.SectorCrew), authz.StatusInProgress, authz.StatusAwaitingMaterial, authz.Allowed},
		{"crew reopens rejected", identity(authz.RoleFirstOfficer, authz.SectorCrew), authz.StatusRejected, authz.StatusPending, authz.Allowed},
		{"crew cannot reject", identity(authz.RoleCommandingOfficer, authz.SectorCrew), authz.StatusPending, authz.StatusRejected, authz.Denied},
		{"crew cannot cancel", identity(authz.RoleCommandingOfficer, authz.SectorCrew), authz.StatusInProgress, authz.StatusCancelled, authz.Denied},
		{"coordinator approves", identity(authz.RoleCoordinator, authz.SectorMaintenance), authz.StatusUnderReview, authz.StatusApproved, authz.Allowed},
		{"coordinator completes", identity(authz.RoleCoordinator, authz.SectorOperations), authz.StatusInProgress, authz.StatusCompleted, authz.Allowed},
		{"coordinator reopens cancelled", identity(authz.RoleCoordinator, authz.SectorOperations), authz.StatusCancelled, authz.StatusPending, authz.Allowed},
		{"coordinator reapproves completed", identity(authz.RoleCoordinator, authz.SectorOperations), authz.StatusCompleted, authz.StatusApproved, authz.Allowed},
		{"coordinator cannot drive contracted", identity(authz.RoleCoordinator, authz.SectorMaintenance), authz.StatusContracted, authz.StatusInProgress, authz.Denied},
		{"it sector denied", identity(authz.RoleManager, authz.SectorIT), authz.StatusPending, authz.StatusUnderReview, authz.Denied},
		{"undefined sector denied", identity(authz.RoleManager, authz.SectorUndefined), authz.StatusPending, authz.StatusUnderReview, authz.Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := authz.ValidateTransition(tt.from, tt.to, tt.id)
			assert.Equal(t, tt.want, res.Verdict)
			if tt.want == authz.Denied {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestValidateTransition_Invalid(t *testing.T) {
	id := identity(authz.RoleCoordinator, authz.SectorMaintenance)

	t.Run("unknown current status", func(t *testing.T) {
		res := authz.ValidateTransition(authz.OrderStatus(99), authz.StatusPending, id)
		require.Equal(t, authz.Invalid, res.Verdict)

		var vErr *authz.ValidationError
		require.ErrorAs(t, res.Err(), &vErr)
		assert.Equal(t, "status", vErr.Kind)
		assert.True(t, errors.Is(res.Err(), apperrors.ErrInvalidInput))
	})

	t.Run("unknown requested status", func(t *testing.T) {
		res := authz.ValidateTransition(authz.StatusPending, authz.StatusUnknown, id)
		assert.Equal(t, authz.Invalid, res.Verdict)
	})

	t.Run("unknown identity enums on a real edge", func(t *testing.T) {
		res := authz.ValidateTransition(authz.StatusPending, authz.StatusUnderReview, identity(authz.Role(50), authz.SectorCrew))
		assert.Equal(t, authz.Invalid, res.Verdict)

		res = authz.ValidateTransition(authz.StatusPending, authz.StatusUnderReview, identity(authz.RoleManager, authz.Sector(50)))
		assert.Equal(t, authz.Invalid, res.Verdict)
	})

	t.Run("denial is distinguishable from invalid input", func(t *testing.T) {
		res := authz.ValidateTransition(authz.StatusPending, authz.StatusCompleted, id)
		require.Equal(t, authz.Denied, res.Verdict)

		var denied *authz.DeniedError
		require.ErrorAs(t, res.Err(), &denied)
		assert.True(t, errors.Is(res.Err(), apperrors.ErrForbidden))
		assert.False(t, errors.Is(res.Err(), apperrors.ErrInvalidInput))
	})
}

func TestAllowedTransitions(t *testing.T) {
	crew := identity(authz.RoleChiefEngineer, authz.SectorCrew)
	assert.Equal(t, []authz.OrderStatus{authz.StatusAwaitingMaterial, authz.StatusCompleted},
		authz.AllowedTransitions(authz.StatusInProgress, crew))

	buyer := identity(authz.RoleBuyerMid, authz.SectorProcurement)
	assert.Empty(t, authz.AllowedTransitions(authz.StatusPending, buyer))

	assert.Nil(t, authz.AllowedTransitions(authz.StatusUnknown, crew))
}

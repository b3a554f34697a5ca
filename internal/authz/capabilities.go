package authz

var (
	operationalRoles = rolesOf(
		RoleManager, RoleSupervisor, RoleCoordinator,
		RoleBuyerJunior, RoleBuyerMid, RoleBuyerSenior,
		RoleCommandingOfficer, RoleFirstOfficer, RoleNavigationOfficer,
		RoleChiefEngineer, RoleAssistantChiefEngineer, RoleMachineryOfficer,
	)
	recognizedSectors = sectorsOf(
		SectorAdministration, SectorMaintenance, SectorOperations,
		SectorProcurement, SectorCrew, SectorWarehouse,
		SectorHR, SectorIT, SectorUndefined,
	)
	creatorSectors = sectorsOf(SectorMaintenance, SectorOperations, SectorCrew)
)

// sectorPolicy is the per-sector slice of the capability matrix: who may edit,
// at which statuses, and which graph edges the sector may walk.
type sectorPolicy struct {
	editRoles    roleSet
	editStatuses statusSet
	transitions  [statusCount]statusSet
}

var (
	crewPolicy = sectorPolicy{
		editRoles: rolesOf(
			RoleCommandingOfficer, RoleFirstOfficer, RoleNavigationOfficer,
			RoleChiefEngineer, RoleAssistantChiefEngineer, RoleMachineryOfficer,
		),
		editStatuses: statusesOf(StatusPending, StatusRejected, StatusInProgress),
		transitions: [statusCount]statusSet{
			StatusPending:    statusesOf(StatusUnderReview),
			StatusInProgress: statusesOf(StatusCompleted, StatusAwaitingMaterial),
			StatusRejected:   statusesOf(StatusPending),
		},
	}

	planningPolicy = sectorPolicy{
		editRoles: rolesOf(RoleManager, RoleSupervisor, RoleCoordinator),
		editStatuses: statusesOf(
			StatusPending, StatusUnderReview, StatusApproved,
			StatusRejected, StatusPlanned, StatusAwaitingProcurement,
		),
		transitions: graphFrom(
			StatusPending, StatusUnderReview, StatusApproved, StatusRejected,
			StatusPlanned, StatusAwaitingProcurement, StatusInProgress,
			StatusAwaitingMaterial, StatusCompleted, StatusCancelled,
		),
	}

	procurementPolicy = sectorPolicy{
		editRoles:    rolesOf(RoleBuyerJunior, RoleBuyerMid, RoleBuyerSenior),
		editStatuses: statusesOf(StatusAwaitingProcurement, StatusContracted, StatusInProgress),
		transitions: [statusCount]statusSet{
			StatusAwaitingProcurement: statusesOf(StatusContracted, StatusCancelled, StatusAwaitingMaterial),
			StatusContracted:          statusesOf(StatusInProgress, StatusCancelled),
		},
	}
)

// policyFor returns the sector's policy, or nil when the sector has no
// workflow capabilities.
func policyFor(s Sector) *sectorPolicy {
	switch s {
	case SectorCrew:
		return &crewPolicy
	case SectorMaintenance, SectorOperations:
		return &planningPolicy
	case SectorProcurement:
		return &procurementPolicy
	case SectorAdministration, SectorWarehouse, SectorHR, SectorIT, SectorUndefined:
		return nil
	default:
		return nil
	}
}

// CanView reports whether the identity may read service orders.
func CanView(id Identity) bool {
	if id.IsAdmin() {
		return true
	}
	return operationalRoles.has(id.Role) && recognizedSectors.has(id.Sector)
}

// CanCreate reports whether the identity may open a new service order.
func CanCreate(id Identity) bool {
	if id.IsAdmin() {
		return true
	}
	return id.Role.IsValid() && creatorSectors.has(id.Sector)
}

// CanEdit reports whether the identity may modify the order in its current
// status. The order creator is not taken into account.
func CanEdit(id Identity, order OrderSnapshot) bool {
	if id.IsAdmin() {
		return true
	}
	p := policyFor(id.Sector)
	if p == nil {
		return false
	}
	return p.editRoles.has(id.Role) && p.editStatuses.has(order.Status)
}

// CanEditField reports whether role/sector may change a restricted field.
// Unknown field names are denied, administrators included.
func CanEditField(role Role, sector Sector, field FieldName) bool {
	rule, ok := fieldRules[field]
	if !ok {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	return rule.roles.has(role) && rule.sectors.has(sector)
}

// CanDelete reports whether the identity may delete orders. Only administrators may.
func CanDelete(id Identity) bool {
	return id.IsAdmin()
}

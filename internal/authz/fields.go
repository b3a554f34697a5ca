package authz

// FieldName identifies an order field whose editability is narrower than the
// general edit check.
type FieldName string

const (
	FieldPlannedStartDate  FieldName = "plannedStartDate"
	FieldPlannedEndDate    FieldName = "plannedEndDate"
	FieldSolutionType      FieldName = "solutionType"
	FieldResponsibleCrew   FieldName = "responsibleCrew"
	FieldCoordinatorNotes  FieldName = "coordinatorNotes"
	FieldContractedCompany FieldName = "contractedCompany"
	FieldContractDate      FieldName = "contractDate"
	FieldServiceOrderCost  FieldName = "serviceOrderCost"
	FieldSupplierNotes     FieldName = "supplierNotes"
)

type fieldRule struct {
	roles   roleSet
	sectors sectorSet
}

var (
	planningRule = fieldRule{
		roles:   rolesOf(RoleCoordinator),
		sectors: sectorsOf(SectorOperations, SectorMaintenance),
	}
	procurementRule = fieldRule{
		roles:   rolesOf(RoleBuyerJunior, RoleBuyerMid, RoleBuyerSenior),
		sectors: sectorsOf(SectorProcurement),
	}
)

var fieldRules = map[FieldName]fieldRule{
	FieldPlannedStartDate: planningRule,
	FieldPlannedEndDate:   planningRule,
	FieldSolutionType:     planningRule,
	FieldResponsibleCrew:  planningRule,
	FieldCoordinatorNotes: planningRule,

	FieldContractedCompany: procurementRule,
	FieldContractDate:      procurementRule,
	FieldServiceOrderCost:  procurementRule,
	FieldSupplierNotes:     procurementRule,
}

// RestrictedFields returns the field names covered by the field-level table,
// planning fields first.
func RestrictedFields() []FieldName {
	return []FieldName{
		FieldPlannedStartDate, FieldPlannedEndDate, FieldSolutionType,
		FieldResponsibleCrew, FieldCoordinatorNotes,
		FieldContractedCompany, FieldContractDate, FieldServiceOrderCost,
		FieldSupplierNotes,
	}
}

func (f FieldName) IsValid() bool {
	_, ok := fieldRules[f]
	return ok
}

func (f FieldName) String() string { return string(f) }

func ParseField(name string) (FieldName, error) {
	f := FieldName(name)
	if !f.IsValid() {
		return "", newValidationError("field", name)
	}
	return f, nil
}

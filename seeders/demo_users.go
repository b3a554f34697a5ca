package seeders

import "vessel-orders/internal/authz"

type demoProfile struct {
	name   string
	local  string
	role   authz.Role
	sector authz.Sector
}

// demoProfiles covers every sector that takes part in the order workflow.
var demoProfiles = []demoProfile{
	{"Marina Costa", "marina.costa", authz.RoleManager, authz.SectorAdministration},
	{"Paulo Ribeiro", "paulo.ribeiro", authz.RoleCoordinator, authz.SectorMaintenance},
	{"Helena Duarte", "helena.duarte", authz.RoleSupervisor, authz.SectorOperations},
	{"Rafael Nunes", "rafael.nunes", authz.RoleBuyerSenior, authz.SectorProcurement},
	{"Tiago Lima", "tiago.lima", authz.RoleBuyerJunior, authz.SectorProcurement},
	{"Carlos Mendes", "carlos.mendes", authz.RoleCommandingOfficer, authz.SectorCrew},
	{"Bruno Alves", "bruno.alves", authz.RoleChiefEngineer, authz.SectorCrew},
	{"Lucas Pereira", "lucas.pereira", authz.RoleMachineryOfficer, authz.SectorCrew},
	{"Ana Souza", "ana.souza", authz.RoleSupervisor, authz.SectorWarehouse},
}

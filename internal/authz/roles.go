package authz

import (
	"database/sql/driver"
	"fmt"
)

// Role is the job title of the acting user.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleManager
	RoleSupervisor
	RoleCoordinator
	RoleBuyerJunior
	RoleBuyerMid
	RoleBuyerSenior
	RoleCommandingOfficer
	RoleFirstOfficer
	RoleNavigationOfficer
	RoleChiefEngineer
	RoleAssistantChiefEngineer
	RoleMachineryOfficer
	RoleAssistant
	RoleAuxiliary
	RoleIntern
	RoleCommon

	roleCount
)

var roleCodes = [...]string{
	RoleUnknown:                "",
	RoleAdmin:                  "ADMIN",
	RoleManager:                "MANAGER",
	RoleSupervisor:             "SUPERVISOR",
	RoleCoordinator:            "COORDINATOR",
	RoleBuyerJunior:            "BUYER_JUNIOR",
	RoleBuyerMid:               "BUYER_MID",
	RoleBuyerSenior:            "BUYER_SENIOR",
	RoleCommandingOfficer:      "COMMANDING_OFFICER",
	RoleFirstOfficer:           "FIRST_OFFICER",
	RoleNavigationOfficer:      "NAVIGATION_OFFICER",
	RoleChiefEngineer:          "CHIEF_ENGINEER",
	RoleAssistantChiefEngineer: "ASSISTANT_CHIEF_ENGINEER",
	RoleMachineryOfficer:       "MACHINERY_OFFICER",
	RoleAssistant:              "ASSISTANT",
	RoleAuxiliary:              "AUXILIARY",
	RoleIntern:                 "INTERN",
	RoleCommon:                 "COMMON",
}

// Adding a Role without a code fails to compile here.
var _ [roleCount]struct{} = [len(roleCodes)]struct{}{}

var rolesByCode = func() map[string]Role {
	m := make(map[string]Role, roleCount)
	for r := RoleAdmin; r < roleCount; r++ {
		m[roleCodes[r]] = r
	}
	return m
}()

// AllRoles returns every valid role in declaration order.
func AllRoles() []Role {
	out := make([]Role, 0, roleCount-1)
	for r := RoleAdmin; r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}

func (r Role) IsValid() bool { return r > RoleUnknown && r < roleCount }

func (r Role) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleCodes[r]
}

// ParseRole converts a storage/wire code into a Role.
func ParseRole(code string) (Role, error) {
	if r, ok := rolesByCode[code]; ok {
		return r, nil
	}
	return RoleUnknown, newValidationError("role", code)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, newValidationError("role", r.String())
	}
	return []byte(roleCodes[r]), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r *Role) Scan(src any) error {
	code, err := scanCode("role", src)
	if err != nil {
		return err
	}
	return r.UnmarshalText([]byte(code))
}

func (r Role) Value() (driver.Value, error) {
	b, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// roleSet is a bitmask over Role; it is how the capability tables are stored.
type roleSet uint32

func rolesOf(roles ...Role) roleSet {
	var s roleSet
	for _, r := range roles {
		s |= 1 << uint(r)
	}
	return s
}

func (s roleSet) has(r Role) bool {
	return r.IsValid() && s&(1<<uint(r)) != 0
}

func (s roleSet) list() []Role {
	var out []Role
	for r := RoleAdmin; r < roleCount; r++ {
		if s.has(r) {
			out = append(out, r)
		}
	}
	return out
}

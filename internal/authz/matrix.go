package authz

// PolicyMatrix is a read-only description of the built-in policy, used by
// operator tooling.
type PolicyMatrix struct {
	ViewRoles   []Role                        `json:"viewRoles" yaml:"viewRoles"`
	ViewSectors []Sector                      `json:"viewSectors" yaml:"viewSectors"`
	CreateBy    []Sector                      `json:"createSectors" yaml:"createSectors"`
	Sectors     []SectorMatrix                `json:"sectors" yaml:"sectors"`
	Fields      []FieldMatrix                 `json:"fields" yaml:"fields"`
	Graph       map[OrderStatus][]OrderStatus `json:"graph" yaml:"graph"`
}

type SectorMatrix struct {
	Sector       Sector                        `json:"sector" yaml:"sector"`
	EditRoles    []Role                        `json:"editRoles" yaml:"editRoles"`
	EditStatuses []OrderStatus                 `json:"editStatuses" yaml:"editStatuses"`
	Transitions  map[OrderStatus][]OrderStatus `json:"transitions" yaml:"transitions"`
}

type FieldMatrix struct {
	Field   FieldName `json:"field" yaml:"field"`
	Roles   []Role    `json:"roles" yaml:"roles"`
	Sectors []Sector  `json:"sectors" yaml:"sectors"`
}

// Matrix describes the capability matrix and transition graph.
func Matrix() PolicyMatrix {
	m := PolicyMatrix{
		ViewRoles:   operationalRoles.list(),
		ViewSectors: recognizedSectors.list(),
		CreateBy:    creatorSectors.list(),
		Graph:       edges(transitionGraph),
	}
	for _, s := range AllSectors() {
		p := policyFor(s)
		if p == nil {
			continue
		}
		m.Sectors = append(m.Sectors, SectorMatrix{
			Sector:       s,
			EditRoles:    p.editRoles.list(),
			EditStatuses: p.editStatuses.list(),
			Transitions:  edges(p.transitions),
		})
	}
	for _, f := range RestrictedFields() {
		rule := fieldRules[f]
		m.Fields = append(m.Fields, FieldMatrix{
			Field:   f,
			Roles:   rule.roles.list(),
			Sectors: rule.sectors.list(),
		})
	}
	return m
}

func edges(g [statusCount]statusSet) map[OrderStatus][]OrderStatus {
	out := make(map[OrderStatus][]OrderStatus)
	for _, s := range AllStatuses() {
		if next := g[s].list(); len(next) > 0 {
			out[s] = next
		}
	}
	return out
}

// Package scenario runs YAML authorization assertions through authz.Engine.
package scenario

// Identity is written with raw codes so unknown values can be asserted as invalid.
type Identity struct {
	Role   string `yaml:"role"`
	Sector string `yaml:"sector"`
	Email  string `yaml:"email"`
}

// Case is one assertion. Status is the order's current status for edit and
// transition cases; Requested is the target of a transition.
type Case struct {
	Name      string   `yaml:"name"`
	Identity  Identity `yaml:"identity"`
	Operation string   `yaml:"operation"`
	Status    string   `yaml:"status,omitempty"`
	Requested string   `yaml:"requested,omitempty"`
	Field     string   `yaml:"field,omitempty"`
	Expect    string   `yaml:"expect"`
	Reason    string   `yaml:"reason,omitempty"`
}

// Scenario is a named collection of cases. Domain overrides the configured
// organization email domain for this file.
type Scenario struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain,omitempty"`
	Cases  []Case `yaml:"cases"`
}

type CaseResult struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type RunResult struct {
	File   string       `json:"file" yaml:"file"`
	Name   string       `json:"name" yaml:"name"`
	Total  int          `json:"total" yaml:"total"`
	Passed int          `json:"passed" yaml:"passed"`
	Failed int          `json:"failed" yaml:"failed"`
	Cases  []CaseResult `json:"cases" yaml:"cases"`
}

package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vessel-orders/internal/authz"
)

// request builds the engine request for c. Unknown codes are left as zero
// values so the engine reports them; only the operation itself must parse.
func request(c Case) (authz.Request, error) {
	op, err := authz.ParseOperation(strings.ToLower(c.Operation))
	if err != nil {
		return authz.Request{}, err
	}
	role, _ := authz.ParseRole(c.Identity.Role)
	sector, _ := authz.ParseSector(c.Identity.Sector)
	req := authz.Request{
		Op:       op,
		Identity: authz.Identity{ID: "scenario", Email: c.Identity.Email, Role: role, Sector: sector},
		Field:    authz.FieldName(c.Field),
	}
	if c.Status != "" {
		status, _ := authz.ParseStatus(c.Status)
		req.Order = &authz.OrderSnapshot{ID: "scenario", Status: status}
	}
	if c.Requested != "" {
		req.Requested, _ = authz.ParseStatus(c.Requested)
	}
	return req, nil
}

// Run evaluates every case of s. Cases are independent of each other.
func Run(s *Scenario, domain string) *RunResult {
	if s.Domain != "" {
		domain = s.Domain
	}
	engine := authz.NewEngine(domain)
	result := &RunResult{Name: s.Name, Total: len(s.Cases)}

	for i, c := range s.Cases {
		cr := CaseResult{
			Index:    i + 1,
			Name:     c.Name,
			Expected: strings.ToLower(c.Expect),
		}

		req, err := request(c)
		if err != nil {
			cr.Actual = authz.Invalid.String()
			cr.Reason = err.Error()
		} else {
			d := engine.Authorize(req)
			cr.Actual = d.Verdict.String()
			cr.Reason = d.Reason
			if d.Cause != nil {
				cr.Reason = d.Cause.Error()
			}
		}

		cr.Passed = cr.Actual == cr.Expected && (c.Reason == "" || c.Reason == cr.Reason)
		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}
	return result
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return &s, nil
}

func LoadAndRun(path, domain string) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	result := Run(s, domain)
	result.File = path
	return result, nil
}

// RunGlob runs every file matching pattern, in glob order.
func RunGlob(pattern, domain string) ([]*RunResult, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no scenario files match pattern: %s", pattern)
	}
	results := make([]*RunResult, 0, len(matches))
	for _, path := range matches {
		r, err := LoadAndRun(path, domain)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// AnyFailed reports whether any case of any result failed.
func AnyFailed(results []*RunResult) bool {
	for _, r := range results {
		if r.Failed > 0 {
			return true
		}
	}
	return false
}

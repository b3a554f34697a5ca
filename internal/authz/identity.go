package authz

import "strings"

// Identity is the per-request snapshot of the acting user.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Sector Sector `json:"sector"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// HasEmailDomain reports whether the identity's email belongs to domain.
// domain may be written with or without the leading "@"; the part after the
// last "@" of the email must equal it exactly, case-insensitively. An empty
// domain never matches.
func (i Identity) HasEmailDomain(domain string) bool {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return false
	}
	email := strings.ToLower(strings.TrimSpace(i.Email))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return false
	}
	return "@"+email[at+1:] == domain
}

// NormalizeDomain lowercases domain and gives it exactly one leading "@".
// It returns "" when nothing but "@" and spaces is left.
func NormalizeDomain(domain string) string {
	d := strings.TrimLeft(strings.ToLower(strings.TrimSpace(domain)), "@")
	if d == "" {
		return ""
	}
	return "@" + d
}

// validate reports the first role or sector outside the known set.
func (i Identity) validate() error {
	if !i.Role.IsValid() {
		return newValidationError("role", i.Role.String())
	}
	if !i.Sector.IsValid() {
		return newValidationError("sector", i.Sector.String())
	}
	return nil
}

// OrderSnapshot is the subset of an order the engine decides on.
type OrderSnapshot struct {
	ID          string      `json:"id"`
	Status      OrderStatus `json:"status"`
	CreatedByID string      `json:"createdById"`
}

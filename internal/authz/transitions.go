package authz

// transitionGraph holds every edge that policy allows in general. Sector
// policies narrow it further; nothing widens it.
var transitionGraph = [statusCount]statusSet{
	StatusPending:             statusesOf(StatusUnderReview, StatusRejected),
	StatusUnderReview:         statusesOf(StatusApproved, StatusRejected, StatusPlanned),
	StatusApproved:            statusesOf(StatusPlanned, StatusInProgress),
	StatusPlanned:             statusesOf(StatusAwaitingProcurement, StatusInProgress),
	StatusAwaitingProcurement: statusesOf(StatusContracted, StatusAwaitingMaterial, StatusCancelled),
	StatusContracted:          statusesOf(StatusInProgress, StatusCancelled),
	StatusInProgress:          statusesOf(StatusCompleted, StatusAwaitingMaterial, StatusCancelled),
	StatusAwaitingMaterial:    statusesOf(StatusInProgress, StatusCancelled),
	StatusCompleted:           statusesOf(StatusApproved, StatusCancelled),
	StatusCancelled:           statusesOf(StatusPending),
	StatusRejected:            statusesOf(StatusPending),
}

// graphFrom copies the graph edges leaving the given statuses.
func graphFrom(origins ...OrderStatus) [statusCount]statusSet {
	var out [statusCount]statusSet
	for _, s := range origins {
		out[s] = transitionGraph[s]
	}
	return out
}

// HasEdge reports whether the general graph contains from -> to.
func HasEdge(from, to OrderStatus) bool {
	if !from.IsValid() {
		return false
	}
	return transitionGraph[from].has(to)
}

// Successors returns the statuses directly reachable from s in the general graph.
func Successors(s OrderStatus) []OrderStatus {
	if !s.IsValid() {
		return nil
	}
	return transitionGraph[s].list()
}

// TransitionResult is the verdict for a single requested status change.
type TransitionResult = Decision

// ValidateTransition decides whether id may move an order from current to
// requested.
//
// Order of checks:
//  1. both statuses must be known values, otherwise the result is Invalid
//  2. requested == current is always allowed
//  3. the edge must exist in the general graph, for administrators too
//  4. the identity's role and sector must be known values
//  5. administrators are allowed any graph edge
//  6. everyone else needs the edge in their sector's allow-list
func ValidateTransition(current, requested OrderStatus, id Identity) TransitionResult {
	if !current.IsValid() {
		return invalid(newValidationError("status", current.String()))
	}
	if !requested.IsValid() {
		return invalid(newValidationError("status", requested.String()))
	}
	if requested == current {
		return allow()
	}
	if !transitionGraph[current].has(requested) {
		return deny(ReasonIllegalTransition)
	}
	if !id.Role.IsValid() {
		return invalid(newValidationError("role", id.Role.String()))
	}
	if !id.Sector.IsValid() {
		return invalid(newValidationError("sector", id.Sector.String()))
	}
	if id.IsAdmin() {
		return allow()
	}
	p := policyFor(id.Sector)
	if p == nil || !p.transitions[current].has(requested) {
		return deny(ReasonTransitionNotPermitted)
	}
	return allow()
}

// AllowedTransitions lists the statuses id may move an order in current to,
// excluding current itself.
func AllowedTransitions(current OrderStatus, id Identity) []OrderStatus {
	var out []OrderStatus
	for _, next := range Successors(current) {
		if ValidateTransition(current, next, id).Allowed() {
			out = append(out, next)
		}
	}
	return out
}

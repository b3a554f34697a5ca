package authz

import "fmt"

// Verdict tags a Decision. The zero value is Denied so an unset Decision
// never grants anything.
type Verdict int

const (
	Denied Verdict = iota
	Allowed
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Denial reasons surfaced to users.
const (
	ReasonEmailDomain            = "access is restricted to organization accounts"
	ReasonViewNotPermitted       = "you are not allowed to view service orders"
	ReasonCreateNotPermitted     = "your sector cannot open service orders"
	ReasonEditNotPermitted       = "you cannot edit this service order in its current status"
	ReasonFieldNotPermitted      = "you cannot change this field"
	ReasonDeleteNotPermitted     = "only administrators can delete service orders"
	ReasonIllegalTransition      = "illegal transition"
	ReasonTransitionNotPermitted = "transition not permitted for your sector"
	ReasonMissingOrder           = "no order supplied"
)

// Decision is the outcome of an authorization query.
type Decision struct {
	Verdict Verdict
	// Reason is set for Denied decisions.
	Reason string
	// Cause is set for Invalid decisions.
	Cause error
}

func allow() Decision { return Decision{Verdict: Allowed} }
func deny(reason string) Decision { return Decision{Verdict: Denied, Reason: reason} }
func invalid(err error) Decision { return Decision{Verdict: Invalid, Cause: err} }
func fromBool(ok bool, reason string) Decision {
	if ok {
		return allow()
	}
	return deny(reason)
}

func (d Decision) Allowed() bool { return d.Verdict == Allowed }

// Err converts the decision into an error: nil when allowed, *DeniedError
// when refused by policy, *ValidationError (or the wrapped cause) when the
// inputs were corrupt.
func (d Decision) Err() error {
	switch d.Verdict {
	case Allowed:
		return nil
	case Invalid:
		if d.Cause != nil {
			return d.Cause
		}
		return newValidationError("input", "")
	default:
		return &DeniedError{Reason: d.Reason}
	}
}

// Operation selects which query Engine.Authorize answers.
type Operation int

const (
	OpView Operation = iota + 1
	OpCreate
	OpEdit
	OpEditField
	OpDelete
	OpTransition
)

var operationNames = map[Operation]string{
	OpView:       "view",
	OpCreate:     "create",
	OpEdit:       "edit",
	OpEditField:  "edit_field",
	OpDelete:     "delete",
	OpTransition: "transition",
}

func (o Operation) String() string {
	if n, ok := operationNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// ParseOperation accepts the names produced by Operation.String.
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return 0, newValidationError("operation", name)
}

// Request is one question put to the Engine.
type Request struct {
	Op       Operation
	Identity Identity
	// Order is required for OpEdit and OpTransition.
	Order *OrderSnapshot
	// Field is used by OpEditField.
	Field FieldName
	// Requested is the target status for OpTransition.
	Requested OrderStatus
}

// Engine is the single entry point handlers use before touching orders.
// It holds only the organization email domain and is safe for concurrent use.
type Engine struct {
	emailDomain string
}

func NewEngine(emailDomain string) *Engine {
	return &Engine{emailDomain: NormalizeDomain(emailDomain)}
}

func (e *Engine) EmailDomain() string { return e.emailDomain }

// Authorize checks the email-domain precondition and dispatches to the
// capability matrix or the transition validator. A role or sector outside the
// known set yields Invalid for every operation, administrators included.
func (e *Engine) Authorize(req Request) Decision {
	if !req.Identity.HasEmailDomain(e.emailDomain) {
		return deny(ReasonEmailDomain)
	}
	// transitions check the graph edge before the identity
	if req.Op != OpTransition {
		if err := req.Identity.validate(); err != nil {
			return invalid(err)
		}
	}

	switch req.Op {
	case OpView:
		return fromBool(CanView(req.Identity), ReasonViewNotPermitted)
	case OpCreate:
		return fromBool(CanCreate(req.Identity), ReasonCreateNotPermitted)
	case OpEdit:
		if req.Order == nil {
			return deny(ReasonMissingOrder)
		}
		return fromBool(CanEdit(req.Identity, *req.Order), ReasonEditNotPermitted)
	case OpEditField:
		return fromBool(CanEditField(req.Identity.Role, req.Identity.Sector, req.Field), ReasonFieldNotPermitted)
	case OpDelete:
		return fromBool(CanDelete(req.Identity), ReasonDeleteNotPermitted)
	case OpTransition:
		if req.Order == nil {
			return deny(ReasonMissingOrder)
		}
		return ValidateTransition(req.Order.Status, req.Requested, req.Identity)
	default:
		return invalid(newValidationError("operation", req.Op.String()))
	}
}

// CanView reports whether id may list and open service orders.
func (e *Engine) CanView(id Identity) Decision {
	return e.Authorize(Request{Op: OpView, Identity: id})
}

func (e *Engine) CanCreate(id Identity) Decision {
	return e.Authorize(Request{Op: OpCreate, Identity: id})
}

func (e *Engine) CanEdit(id Identity, order OrderSnapshot) Decision {
	return e.Authorize(Request{Op: OpEdit, Identity: id, Order: &order})
}

func (e *Engine) CanEditField(id Identity, field FieldName) Decision {
	return e.Authorize(Request{Op: OpEditField, Identity: id, Field: field})
}

func (e *Engine) CanDelete(id Identity) Decision {
	return e.Authorize(Request{Op: OpDelete, Identity: id})
}

func (e *Engine) ValidateTransition(id Identity, order OrderSnapshot, requested OrderStatus) Decision {
	return e.Authorize(Request{Op: OpTransition, Identity: id, Order: &order, Requested: requested})
}

// AllowedTransitions is AllowedTransitions behind the email-domain check.
func (e *Engine) AllowedTransitions(id Identity, order OrderSnapshot) []OrderStatus {
	if !id.HasEmailDomain(e.emailDomain) {
		return nil
	}
	return AllowedTransitions(order.Status, id)
}

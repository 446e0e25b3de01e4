package access

import (
	"errors"
	"fmt"
)

var (
	// ErrReassignmentDenied rejects the whole update when the actor may not assign technicians.
	ErrReassignmentDenied = errors.New("not authorized to assign technicians to this ticket")
	// ErrUpdateDenied rejects updates of title, description, status or priority.
	ErrUpdateDenied = errors.New("not authorized to update this ticket")
)

// VisibilityKind enumerates the list predicates a role can be granted.
type VisibilityKind int

const (
	VisibleNone VisibilityKind = iota
	VisibleAll
	VisibleCreated
	VisibleAssigned
	VisibleCreatedOrAssigned
)

func (k VisibilityKind) String() string {
	switch k {
	case VisibleAll:
		return "all"
	case VisibleCreated:
		return "created"
	case VisibleAssigned:
		return "assigned"
	case VisibleCreatedOrAssigned:
		return "created_or_assigned"
	default:
		return "none"
	}
}

// Visibility is the set of tickets a subject may list, expressed as a
// predicate over creator and technician ids.
type Visibility struct {
	Kind   VisibilityKind
	UserID uint
}

// Includes evaluates the predicate for one ticket.
func (v Visibility) Includes(t Target) bool {
	rel := RelationOf(Subject{UserID: v.UserID}, t)
	switch v.Kind {
	case VisibleAll:
		return true
	case VisibleCreated:
		return rel.isCreator()
	case VisibleAssigned:
		return rel.isAssignee()
	case VisibleCreatedOrAssigned:
		return rel != RelationNone
	default:
		return false
	}
}

// UpdateFields records which parts of a ticket an update proposes to change.
type UpdateFields struct {
	Reassignment bool
	Other        bool
}

// Engine applies a Policy to concrete ticket operations.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) allowed(s Subject, res Resource, act Action, rel Relation) (bool, error) {
	ok, err := e.policy.Allowed(s.Role, res, act, rel)
	if err != nil {
		return false, fmt.Errorf("evaluate %s %s for %s: %w", act, res, s.Role, err)
	}
	return ok, nil
}

// CanCreateTicket reports whether the subject may open tickets.
func (e *Engine) CanCreateTicket(s Subject) (bool, error) {
	return e.allowed(s, ResourceTicket, ActionCreate, RelationNone)
}

// CanReadTicket is the single-ticket visibility test.
func (e *Engine) CanReadTicket(s Subject, t Target) (bool, error) {
	return e.allowed(s, ResourceTicket, ActionRead, RelationOf(s, t))
}

// CanComment gates both adding and listing comments of a ticket.
func (e *Engine) CanComment(s Subject, t Target) (bool, error) {
	return e.allowed(s, ResourceTicket, ActionComment, RelationOf(s, t))
}

// CanDeleteTicket does not depend on ownership.
func (e *Engine) CanDeleteTicket(s Subject) (bool, error) {
	return e.allowed(s, ResourceTicket, ActionDelete, RelationNone)
}

func (e *Engine) CanViewStats(s Subject) (bool, error) {
	return e.allowed(s, ResourceStats, ActionRead, RelationNone)
}

// TicketVisibility derives the list predicate by probing the policy with
// each relation.
func (e *Engine) TicketVisibility(s Subject) (Visibility, error) {
	granted := make(map[Relation]bool, 4)
	for _, rel := range AllRelations() {
		ok, err := e.allowed(s, ResourceTicket, ActionList, rel)
		if err != nil {
			return Visibility{}, err
		}
		granted[rel] = ok
	}

	v := Visibility{UserID: s.UserID}
	switch {
	case granted[RelationNone]:
		v.Kind = VisibleAll
	case granted[RelationCreator] && granted[RelationAssignee]:
		v.Kind = VisibleCreatedOrAssigned
	case granted[RelationCreator]:
		v.Kind = VisibleCreated
	case granted[RelationAssignee]:
		v.Kind = VisibleAssigned
	default:
		v.Kind = VisibleNone
	}
	return v, nil
}

// AuthorizeUpdate checks a partial update. Reassignment is evaluated first
// and a denial rejects the whole update; other fields are only evaluated when
// present.
func (e *Engine) AuthorizeUpdate(s Subject, t Target, fields UpdateFields) error {
	rel := RelationOf(s, t)

	if fields.Reassignment {
		ok, err := e.allowed(s, ResourceTicket, ActionAssign, rel)
		if err != nil {
			return err
		}
		if !ok {
			return ErrReassignmentDenied
		}
	}

	if fields.Other {
		ok, err := e.allowed(s, ResourceTicket, ActionUpdate, rel)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUpdateDenied
		}
	}

	return nil
}

// Package access decides which ticket operations a user may perform.
//
// Decisions are driven by a rule table keyed by role, resource and action.
// Each rule carries a Scope that is matched against the Relation between
// the acting user and the target ticket. The table lives in DefaultRules and
// is evaluated either directly (StaticPolicy) or through a policy store.
package access

import (
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

type Resource string

const (
	ResourceTicket Resource = "ticket"
	ResourceStats  Resource = "stats"
)

type Action string

const (
	ActionList    Action = "list"
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionAssign  Action = "assign"
	ActionDelete  Action = "delete"
	ActionComment Action = "comment"
)

// Scope restricts a rule to tickets standing in a given relation to the actor.
type Scope string

const (
	ScopeAny           Scope = "any"
	ScopeOwn           Scope = "own"
	ScopeAssigned      Scope = "assigned"
	ScopeOwnOrAssigned Scope = "own_or_assigned"
	ScopeNone          Scope = "none"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeAny, ScopeOwn, ScopeAssigned, ScopeOwnOrAssigned, ScopeNone:
		return true
	}
	return false
}

// Relation describes how the actor relates to a ticket.
type Relation string

const (
	RelationNone            Relation = "none"
	RelationCreator         Relation = "creator"
	RelationAssignee        Relation = "assignee"
	RelationCreatorAssignee Relation = "creator_assignee"
)

// AllRelations returns every relation value.
func AllRelations() []Relation {
	return []Relation{RelationNone, RelationCreator, RelationAssignee, RelationCreatorAssignee}
}

func (r Relation) isCreator() bool {
	return r == RelationCreator || r == RelationCreatorAssignee
}

func (r Relation) isAssignee() bool {
	return r == RelationAssignee || r == RelationCreatorAssignee
}

// Subject is the authenticated actor.
type Subject struct {
	UserID uint
	Role   vo.Role
}

// Target holds the ownership fields of a ticket.
type Target struct {
	CreatorID    uint
	TechnicianID *uint
}

// RelationOf computes the relation between subject and target.
func RelationOf(s Subject, t Target) Relation {
	creator := s.UserID != 0 && t.CreatorID == s.UserID
	assignee := s.UserID != 0 && t.TechnicianID != nil && *t.TechnicianID == s.UserID

	switch {
	case creator && assignee:
		return RelationCreatorAssignee
	case creator:
		return RelationCreator
	case assignee:
		return RelationAssignee
	default:
		return RelationNone
	}
}

// ScopeAllows reports whether a rule with the given scope covers the relation.
func ScopeAllows(scope Scope, rel Relation) bool {
	switch scope {
	case ScopeAny:
		return true
	case ScopeOwn:
		return rel.isCreator()
	case ScopeAssigned:
		return rel.isAssignee()
	case ScopeOwnOrAssigned:
		return rel.isCreator() || rel.isAssignee()
	default:
		return false
	}
}

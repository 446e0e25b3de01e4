package access

import (
	"fmt"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

// Rule grants role the action on resource for targets within scope.
type Rule struct {
	Role     vo.Role
	Resource Resource
	Action   Action
	Scope    Scope
}

// DefaultRules is the permission matrix of the service. A missing
// (role, resource, action) combination is denied.
var DefaultRules = []Rule{
	{vo.RoleAdmin, ResourceTicket, ActionList, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionRead, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionCreate, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionUpdate, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionAssign, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionDelete, ScopeAny},
	{vo.RoleAdmin, ResourceTicket, ActionComment, ScopeAny},
	{vo.RoleAdmin, ResourceStats, ActionRead, ScopeAny},

	{vo.RoleTechnician, ResourceTicket, ActionList, ScopeOwnOrAssigned},
	{vo.RoleTechnician, ResourceTicket, ActionRead, ScopeOwnOrAssigned},
	{vo.RoleTechnician, ResourceTicket, ActionCreate, ScopeAny},
	{vo.RoleTechnician, ResourceTicket, ActionUpdate, ScopeAssigned},
	{vo.RoleTechnician, ResourceTicket, ActionComment, ScopeOwnOrAssigned},

	{vo.RoleEmployee, ResourceTicket, ActionList, ScopeOwn},
	{vo.RoleEmployee, ResourceTicket, ActionRead, ScopeOwn},
	{vo.RoleEmployee, ResourceTicket, ActionCreate, ScopeAny},
	{vo.RoleEmployee, ResourceTicket, ActionComment, ScopeOwn},
}

// Policy answers whether role may perform action on resource for a target
// in the given relation.
type Policy interface {
	Allowed(role vo.Role, resource Resource, action Action, rel Relation) (bool, error)
}

type ruleKey struct {
	role     vo.Role
	resource Resource
	action   Action
}

// StaticPolicy evaluates a rule table held in memory.
type StaticPolicy struct {
	scopes map[ruleKey]Scope
}

// NewStaticPolicy builds a policy from rules. Later rules for the same key win.
func NewStaticPolicy(rules []Rule) (*StaticPolicy, error) {
	scopes := make(map[ruleKey]Scope, len(rules))
	for _, r := range rules {
		if !r.Role.IsValid() {
			return nil, fmt.Errorf("invalid role in rule: %q", r.Role)
		}
		if !r.Scope.IsValid() {
			return nil, fmt.Errorf("invalid scope in rule: %q", r.Scope)
		}
		scopes[ruleKey{r.Role, r.Resource, r.Action}] = r.Scope
	}
	return &StaticPolicy{scopes: scopes}, nil
}

// MustDefaultPolicy returns a StaticPolicy over DefaultRules.
func MustDefaultPolicy() *StaticPolicy {
	p, err := NewStaticPolicy(DefaultRules)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *StaticPolicy) Allowed(role vo.Role, resource Resource, action Action, rel Relation) (bool, error) {
	scope, ok := p.scopes[ruleKey{role, resource, action}]
	if !ok {
		return false, nil
	}
	return ScopeAllows(scope, rel), nil
}

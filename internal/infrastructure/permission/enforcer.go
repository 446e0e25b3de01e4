package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// modelText matches a (role, resource, action) policy line and lets its
// scope column decide against the caller's relation to the ticket.
const modelText = `
[request_definition]
r = sub, obj, act, rel

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act && scopeAllows(p.scope, r.rel)
`

var _ access.Policy = (*Enforcer)(nil)

// Enforcer is an access.Policy backed by casbin, with policy lines stored
// in the casbin_rule table through the gorm adapter.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	enforcer.AddFunction("scopeAllows", scopeAllowsFunc)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func scopeAllowsFunc(args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("scopeAllows expects 2 arguments, got %d", len(args))
	}
	scope, ok := args[0].(string)
	if !ok {
		return false, fmt.Errorf("scopeAllows: scope must be a string")
	}
	rel, ok := args[1].(string)
	if !ok {
		return false, fmt.Errorf("scopeAllows: relation must be a string")
	}
	return access.ScopeAllows(access.Scope(scope), access.Relation(rel)), nil
}

func (e *Enforcer) Allowed(role vo.Role, resource access.Resource, action access.Action, rel access.Relation) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(string(role), string(resource), string(action), string(rel))
	if err != nil {
		e.logger.Errorw("permission check failed",
			"error", err,
			"role", role,
			"resource", resource,
			"action", action,
			"relation", rel)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// AddRule stores an extra grant. Grants only widen access: a stored rule
// cannot narrow one that already matches.
func (e *Enforcer) AddRule(rule access.Rule) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(ruleParams(rule)...); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}

	return nil
}

func (e *Enforcer) RemoveRule(rule access.Rule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(ruleParams(rule)...); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err)
		return fmt.Errorf("failed to remove policy: %w", err)
	}

	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}

func ruleParams(rule access.Rule) []interface{} {
	return []interface{}{
		string(rule.Role),
		string(rule.Resource),
		string(rule.Action),
		string(rule.Scope),
	}
}

func validateRule(rule access.Rule) error {
	if !rule.Role.IsValid() {
		return fmt.Errorf("invalid role in rule: %q", rule.Role)
	}
	if !rule.Scope.IsValid() {
		return fmt.Errorf("invalid scope in rule: %q", rule.Scope)
	}
	return nil
}

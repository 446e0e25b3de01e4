package permission

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// SeedRules stores every rule that is not already present. Existing lines
// are left alone, so seeding on each start is safe.
func (e *Enforcer) SeedRules(rules []access.Rule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			return err
		}
		ok, err := e.enforcer.AddPolicy(ruleParams(rule)...)
		if err != nil {
			e.logger.Errorw("failed to add access policy",
				"error", err,
				"role", rule.Role,
				"resource", rule.Resource,
				"action", rule.Action)
			return fmt.Errorf("failed to add policy [%s, %s, %s, %s]: %w",
				rule.Role, rule.Resource, rule.Action, rule.Scope, err)
		}
		if ok {
			added++
		}
	}

	e.logger.Infow("access policy seeded", "rules", len(rules), "added", added)
	return nil
}

// NewDefaultEnforcer opens the enforcer and makes sure DefaultRules are stored.
func NewDefaultEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	e, err := NewEnforcer(db, log)
	if err != nil {
		return nil, err
	}
	if err := e.SeedRules(access.DefaultRules); err != nil {
		return nil, err
	}
	return e, nil
}

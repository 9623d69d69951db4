package security

import (
	"errors"
	"fmt"

	t "github.com/gs7776/kuzzle/server/store/types"
)

// Profile is an ordered set of shared Role references. Profiles do not own
// role lifetime; the same hydrated Role may back any number of profiles.
type Profile struct {
	Id    string
	Roles []*Role
}

// IsActionAllowed evaluates the profile's permission for one request.
// Roles are walked in registration order, each contributing its most
// specific matching rule. Any explicit denial is terminal: it cannot be
// overridden by another role's allowance. If no rule matches in any role the
// default is deny.
func (p *Profile) IsActionAllowed(index, collection, controller, action string, ctx *Context) bool {
	allowed := false
	for _, role := range p.Roles {
		restriction, ok := role.Match(index, collection, controller, action)
		if !ok {
			continue
		}
		if restriction.IsDeny() {
			return false
		}
		if !allowed && restriction.Allowed(ctx) {
			allowed = true
		}
	}

	return allowed
}

// HydrateProfile parses a stored definition into a live Profile, resolving
// role references through the supplied loader.
func HydrateProfile(profile *Profile, def *t.ProfileDef, loadRole func(id string) (*Role, error)) error {
	if def == nil {
		return errors.New("security: nil profile definition")
	}
	if len(def.Roles) == 0 {
		return fmt.Errorf("security: profile '%s' references no roles", def.Id)
	}

	roles := make([]*Role, 0, len(def.Roles))
	for _, roleId := range def.Roles {
		role, err := loadRole(roleId)
		if err != nil {
			return fmt.Errorf("security: profile '%s', role '%s': %w", def.Id, roleId, err)
		}
		roles = append(roles, role)
	}

	profile.Id = def.Id
	profile.Roles = roles
	return nil
}

/******************************************************************************
 *
 *  Description :
 *
 *    Role - Profile - User permission resolution chain.
 *    A Role is the atomic, immutable unit of permission: a mapping of
 *    index -> collection -> "controller:action" -> restriction, where a
 *    restriction allows, denies, or runs a named conditional test against
 *    the request context.
 *
 *****************************************************************************/

// Package security implements role-based permission resolution for gateway
// requests.
package security

import (
	"errors"
	"fmt"
	"sync"

	t "github.com/gs7776/kuzzle/server/store/types"
)

// Wildcard matches any index, collection or action in a role rule.
const Wildcard = "*"

// Context is the request context a conditional restriction is evaluated
// against.
type Context struct {
	// Connection ID of the originating session.
	ConnId string
	// Transport kind which produced the request, e.g. "websocket".
	Origin string
}

// ConditionFunc is a conditional restriction test.
type ConditionFunc func(ctx *Context) bool

var condLock sync.RWMutex
var conditions = map[string]ConditionFunc{
	// Grant only to requests arriving over a live websocket connection.
	"connection:websocket": func(ctx *Context) bool {
		return ctx != nil && ctx.Origin == "websocket"
	},
	// Grant only to requests arriving over plain HTTP.
	"connection:http": func(ctx *Context) bool {
		return ctx != nil && ctx.Origin == "http"
	},
}

// RegisterCondition makes a named conditional test available to role
// definitions. Registering a duplicate name panics.
func RegisterCondition(name string, fn ConditionFunc) {
	condLock.Lock()
	defer condLock.Unlock()

	if fn == nil {
		panic("security: RegisterCondition with nil function")
	}
	if _, ok := conditions[name]; ok {
		panic("security: condition '" + name + "' is already registered")
	}
	conditions[name] = fn
}

func lookupCondition(name string) (ConditionFunc, bool) {
	condLock.RLock()
	defer condLock.RUnlock()
	fn, ok := conditions[name]
	return fn, ok
}

const (
	restrictDeny = iota
	restrictAllow
	restrictCond
)

// Restriction is one rule of a role: allow, deny, or conditional.
type Restriction struct {
	kind int
	cond ConditionFunc
}

// Allowed evaluates the restriction against the request context.
// A deny never evaluates to true; a conditional evaluates its test.
func (r Restriction) Allowed(ctx *Context) bool {
	switch r.kind {
	case restrictAllow:
		return true
	case restrictCond:
		return r.cond(ctx)
	}
	return false
}

// IsDeny reports whether the restriction is an explicit denial.
func (r Restriction) IsDeny() bool {
	return r.kind == restrictDeny
}

// Role is a hydrated, immutable set of permission rules.
type Role struct {
	Id      string
	indexes map[string]map[string]map[string]Restriction
}

// Match returns the most specific restriction of this role for the given
// request. Action keys are "controller:action" with "controller:*" and "*"
// as progressively wider forms. Specificity order:
// (index, collection, action) over (index, collection, *) over
// (*, *, action) over (*, *, *). The second return value is false if no rule
// of the role matches.
func (r *Role) Match(index, collection, controller, action string) (Restriction, bool) {
	actionKeys := [3]string{controller + ":" + action, controller + ":" + Wildcard, Wildcard}
	scopes := [2][2]string{{index, collection}, {Wildcard, Wildcard}}

	for _, scope := range scopes {
		collections, ok := r.indexes[scope[0]]
		if !ok {
			continue
		}
		actions, ok := collections[scope[1]]
		if !ok {
			continue
		}
		for _, key := range actionKeys {
			if restriction, ok := actions[key]; ok {
				return restriction, true
			}
		}
	}

	return Restriction{}, false
}

// HydrateRole parses a stored definition into a live Role. The definition
// shape is validated strictly: a restriction must be a JSON boolean or an
// object {"test": "<registered condition name>"}.
func HydrateRole(role *Role, def *t.RoleDef) error {
	if def == nil {
		return errors.New("security: nil role definition")
	}

	indexes := make(map[string]map[string]map[string]Restriction)
	for index, collections := range def.Indexes {
		if index == "" {
			return fmt.Errorf("security: role '%s': empty index name", def.Id)
		}
		cm := make(map[string]map[string]Restriction)
		for collection, actions := range collections {
			if collection == "" {
				return fmt.Errorf("security: role '%s': empty collection name", def.Id)
			}
			am := make(map[string]Restriction)
			for action, raw := range actions {
				restriction, err := parseRestriction(raw)
				if err != nil {
					return fmt.Errorf("security: role '%s', rule '%s/%s/%s': %w",
						def.Id, index, collection, action, err)
				}
				am[action] = restriction
			}
			cm[collection] = am
		}
		indexes[index] = cm
	}

	role.Id = def.Id
	role.indexes = indexes
	return nil
}

func parseRestriction(raw any) (Restriction, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return Restriction{kind: restrictAllow}, nil
		}
		return Restriction{kind: restrictDeny}, nil
	case map[string]any:
		name, _ := v["test"].(string)
		if name == "" {
			return Restriction{}, errors.New("missing 'test' in conditional restriction")
		}
		fn, ok := lookupCondition(name)
		if !ok {
			return Restriction{}, errors.New("unknown condition '" + name + "'")
		}
		return Restriction{kind: restrictCond, cond: fn}, nil
	default:
		return Restriction{}, fmt.Errorf("unrecognized restriction form %T", raw)
	}
}

package security

import (
	"strings"
	"testing"

	types "github.com/gs7776/kuzzle/server/store/types"
)

func mustHydrateRole(tb *testing.T, def *types.RoleDef) *Role {
	tb.Helper()
	role := &Role{}
	if err := HydrateRole(role, def); err != nil {
		tb.Fatalf("HydrateRole(%s): %v", def.Id, err)
	}
	return role
}

func roleDef(id string, rules map[string]map[string]map[string]any) *types.RoleDef {
	return &types.RoleDef{Id: id, Indexes: rules}
}

func TestRoleMatchPrecedence(t *testing.T) {
	role := mustHydrateRole(t, roleDef("precedence", map[string]map[string]map[string]any{
		"*": {
			"*": {
				"*":           true,
				"read:search": false,
			},
		},
		"library": {
			"books": {
				"*":           false,
				"read:search": true,
			},
		},
	}))

	// Exact index/collection/action beats the collection wildcard.
	restriction, ok := role.Match("library", "books", "read", "search")
	if !ok {
		t.Fatal("expected a matching rule for library/books read:search")
	}
	if restriction.IsDeny() {
		t.Error("exact rule should win over the collection-level deny")
	}

	// Same scope, a different action: falls to the collection-level "*" deny,
	// never to the global allow.
	restriction, ok = role.Match("library", "books", "write", "create")
	if !ok {
		t.Fatal("expected a matching rule for library/books write:create")
	}
	if !restriction.IsDeny() {
		t.Error("collection-level deny should win over the global allow")
	}

	// Unknown scope: global rules apply, exact action first.
	restriction, ok = role.Match("other", "things", "read", "search")
	if !ok {
		t.Fatal("expected a matching global rule")
	}
	if !restriction.IsDeny() {
		t.Error("global read:search deny should apply in unknown scopes")
	}
}

func TestRoleMatchControllerWildcard(t *testing.T) {
	role := mustHydrateRole(t, roleDef("ctrl", map[string]map[string]map[string]any{
		"*": {
			"*": {
				"read:*": true,
			},
		},
	}))

	if restriction, ok := role.Match("any", "where", "read", "get"); !ok || !restriction.Allowed(nil) {
		t.Error("read:* should match every read action")
	}
	if _, ok := role.Match("any", "where", "write", "create"); ok {
		t.Error("read:* must not match write actions")
	}
}

func TestProfileDenyWins(t *testing.T) {
	allow := mustHydrateRole(t, roleDef("allow-all", map[string]map[string]map[string]any{
		"*": {"*": {"*": true}},
	}))
	deny := mustHydrateRole(t, roleDef("deny-writes", map[string]map[string]map[string]any{
		"*": {"*": {"write:*": false}},
	}))

	// Deny is terminal regardless of role order.
	for _, roles := range [][]*Role{{allow, deny}, {deny, allow}} {
		profile := &Profile{Id: "p", Roles: roles}
		if profile.IsActionAllowed("idx", "coll", "write", "create", nil) {
			t.Errorf("deny must win over allow with role order %s, %s", roles[0].Id, roles[1].Id)
		}
		if !profile.IsActionAllowed("idx", "coll", "read", "get", nil) {
			t.Error("reads are not affected by the write deny")
		}
	}
}

func TestProfileDefaultDeny(t *testing.T) {
	role := mustHydrateRole(t, roleDef("narrow", map[string]map[string]map[string]any{
		"library": {"books": {"read:get": true}},
	}))
	profile := &Profile{Id: "p", Roles: []*Role{role}}

	if profile.IsActionAllowed("library", "movies", "read", "get", nil) {
		t.Error("no matching rule must default to deny")
	}
	if !profile.IsActionAllowed("library", "books", "read", "get", nil) {
		t.Error("the one granted action must be allowed")
	}
}

func TestConditionalRestriction(t *testing.T) {
	role := mustHydrateRole(t, roleDef("ws-only", map[string]map[string]map[string]any{
		"*": {"*": {"subscribe:*": map[string]any{"test": "connection:websocket"}}},
	}))
	profile := &Profile{Id: "p", Roles: []*Role{role}}

	wsCtx := &Context{ConnId: "c1", Origin: "websocket"}
	httpCtx := &Context{ConnId: "c2", Origin: "http"}

	if !profile.IsActionAllowed("idx", "coll", "subscribe", "on", wsCtx) {
		t.Error("websocket context should satisfy the condition")
	}
	if profile.IsActionAllowed("idx", "coll", "subscribe", "on", httpCtx) {
		t.Error("http context must not satisfy the condition")
	}
	if profile.IsActionAllowed("idx", "coll", "subscribe", "on", nil) {
		t.Error("nil context must not satisfy the condition")
	}
}

func TestHydrateRoleMalformed(t *testing.T) {
	cases := []struct {
		name string
		def  *types.RoleDef
		want string
	}{
		{
			"restriction of the wrong type",
			roleDef("bad1", map[string]map[string]map[string]any{
				"*": {"*": {"read:get": "yes"}},
			}),
			"unrecognized restriction",
		},
		{
			"conditional without a test",
			roleDef("bad2", map[string]map[string]map[string]any{
				"*": {"*": {"read:get": map[string]any{}}},
			}),
			"missing 'test'",
		},
		{
			"unknown condition name",
			roleDef("bad3", map[string]map[string]map[string]any{
				"*": {"*": {"read:get": map[string]any{"test": "no:such"}}},
			}),
			"unknown condition",
		},
	}

	for _, tc := range cases {
		err := HydrateRole(&Role{}, tc.def)
		if err == nil {
			t.Errorf("%s: expected hydration to fail", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestHydrateProfileEmptyRoles(t *testing.T) {
	err := HydrateProfile(&Profile{}, &types.ProfileDef{Id: "empty"}, func(string) (*Role, error) {
		t.Fatal("loader must not be called for an empty role list")
		return nil, nil
	})
	if err == nil {
		t.Fatal("a profile without roles must fail hydration")
	}
}

func TestUserIsActionAllowed(t *testing.T) {
	if (&User{Id: "u"}).IsActionAllowed("i", "c", "read", "get", nil) {
		t.Error("a user without a profile must be denied")
	}

	role := mustHydrateRole(t, roleDef("r", map[string]map[string]map[string]any{
		"*": {"*": {"read:*": true}},
	}))
	user := &User{Id: "u", Profile: &Profile{Id: "p", Roles: []*Role{role}}}
	if !user.IsActionAllowed("i", "c", "read", "get", nil) {
		t.Error("user permission must follow the profile")
	}
	if user.IsActionAllowed("i", "c", "write", "create", nil) {
		t.Error("unmatched actions must be denied")
	}
}

func TestAnonymousDefaults(t *testing.T) {
	role := mustHydrateRole(t, DefaultAnonymousRole())
	profile := &Profile{Id: AnonymousId, Roles: []*Role{role}}

	allowed := [][2]string{{"read", "search"}, {"subscribe", "on"}, {"auth", "login"}, {"auth", "logout"}}
	for _, ca := range allowed {
		if !profile.IsActionAllowed("any", "thing", ca[0], ca[1], nil) {
			t.Errorf("anonymous defaults must allow %s:%s", ca[0], ca[1])
		}
	}
	denied := [][2]string{{"write", "create"}, {"admin", "truncateCollection"}}
	for _, ca := range denied {
		if profile.IsActionAllowed("any", "thing", ca[0], ca[1], nil) {
			t.Errorf("anonymous defaults must deny %s:%s", ca[0], ca[1])
		}
	}
}

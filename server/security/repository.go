package security

// Repositories hydrate Roles, Profiles and Users from their persisted
// definitions and cache the live objects. Cached roles are shared across
// profiles; invalidation drops the whole cache.

import (
	"fmt"
	"sync"

	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/store"
	t "github.com/gs7776/kuzzle/server/store/types"
)

// Repositories is the hydration cache for the security resolution chain.
type Repositories struct {
	lock sync.Mutex

	roles    map[string]*Role
	profiles map[string]*Profile
	users    map[string]*User
}

// NewRepositories returns an initialized Repositories.
func NewRepositories() *Repositories {
	return &Repositories{
		roles:    make(map[string]*Role),
		profiles: make(map[string]*Profile),
		users:    make(map[string]*User),
	}
}

// Invalidate drops all cached objects. The next resolution of each identity
// re-reads its persisted definition.
func (r *Repositories) Invalidate() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.roles = make(map[string]*Role)
	r.profiles = make(map[string]*Profile)
	r.users = make(map[string]*User)
}

// LoadRole resolves a role by ID, hydrating and caching it on first use.
func (r *Repositories) LoadRole(id string) (*Role, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.loadRole(id)
}

func (r *Repositories) loadRole(id string) (*Role, error) {
	if role, ok := r.roles[id]; ok {
		return role, nil
	}

	def, err := store.Security.GetRole(id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("security: role '%s': %w", id, t.ErrNotFound)
	}

	role := &Role{}
	if err = HydrateRole(role, def); err != nil {
		return nil, err
	}
	r.roles[id] = role
	return role, nil
}

// LoadProfile resolves a profile by ID, hydrating and caching it and its
// roles on first use.
func (r *Repositories) LoadProfile(id string) (*Profile, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.loadProfile(id)
}

func (r *Repositories) loadProfile(id string) (*Profile, error) {
	if profile, ok := r.profiles[id]; ok {
		return profile, nil
	}

	def, err := store.Security.GetProfile(id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("security: profile '%s': %w", id, t.ErrNotFound)
	}

	profile := &Profile{}
	if err = HydrateProfile(profile, def, r.loadRole); err != nil {
		return nil, err
	}
	r.profiles[id] = profile
	return profile, nil
}

// LoadUser resolves a user by ID together with its profile chain.
func (r *Repositories) LoadUser(id string) (*User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if user, ok := r.users[id]; ok {
		return user, nil
	}

	def, err := store.Security.GetUser(id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("security: user '%s': %w", id, t.ErrNotFound)
	}

	profile, err := r.loadProfile(def.ProfileId)
	if err != nil {
		return nil, err
	}

	user := &User{Id: def.Id, Profile: profile}
	r.users[id] = user
	return user, nil
}

// Anonymous resolves the built-in anonymous user. Definitions missing from
// the store fall back to the built-in defaults; a store failure is returned
// to the caller, which treats it as fatal at process start. The fallback is
// never a silent allow: it carries exactly the permissions of
// DefaultAnonymousRole.
func (r *Repositories) Anonymous() (*User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if user, ok := r.users[AnonymousId]; ok {
		return user, nil
	}

	udef, err := store.Security.GetUser(AnonymousId)
	if err != nil {
		return nil, err
	}
	if udef == nil {
		logs.Warn.Println("security: anonymous definitions not provisioned, using built-in defaults")
		role := &Role{}
		if err = HydrateRole(role, DefaultAnonymousRole()); err != nil {
			return nil, err
		}
		r.roles[AnonymousId] = role
		profile := &Profile{Id: AnonymousId, Roles: []*Role{role}}
		r.profiles[AnonymousId] = profile
		user := &User{Id: AnonymousId, Profile: profile}
		r.users[AnonymousId] = user
		return user, nil
	}

	profile, err := r.loadProfile(udef.ProfileId)
	if err != nil {
		return nil, err
	}

	user := &User{Id: AnonymousId, Profile: profile}
	r.users[AnonymousId] = user
	return user, nil
}

// DefaultAnonymousRole is the built-in permission set of unauthenticated
// connections: read and subscribe everywhere, log in, nothing else.
func DefaultAnonymousRole() *t.RoleDef {
	return &t.RoleDef{
		Id: AnonymousId,
		Indexes: map[string]map[string]map[string]any{
			Wildcard: {
				Wildcard: {
					"read:" + Wildcard:      true,
					"subscribe:" + Wildcard: true,
					"auth:login":            true,
					"auth:logout":           true,
				},
			},
		},
	}
}

// ProvisionDefaults writes the default anonymous role, profile and user
// definitions to the store unless they already exist.
func ProvisionDefaults() error {
	udef, err := store.Security.GetUser(AnonymousId)
	if err != nil {
		return err
	}
	if udef != nil {
		return nil
	}

	if err = store.Security.PutRole(DefaultAnonymousRole()); err != nil {
		return err
	}
	if err = store.Security.PutProfile(&t.ProfileDef{Id: AnonymousId, Roles: []string{AnonymousId}}); err != nil {
		return err
	}
	return store.Security.PutUser(&t.UserDef{Id: AnonymousId, ProfileId: AnonymousId})
}

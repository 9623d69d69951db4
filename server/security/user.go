package security

// AnonymousId is the distinguished user, profile and role identity bound to
// unauthenticated connections.
const AnonymousId = "anonymous"

// User references a Profile. The reference is shared: destroying a user does
// not destroy the profile.
type User struct {
	Id      string
	Profile *Profile
}

// IsAnonymous reports whether the user is the built-in anonymous user.
func (u *User) IsAnonymous() bool {
	return u == nil || u.Id == AnonymousId
}

// IsActionAllowed resolves the user's profile and evaluates the permission
// for one request. A user without a resolvable profile is denied everything.
func (u *User) IsActionAllowed(index, collection, controller, action string, ctx *Context) bool {
	if u == nil || u.Profile == nil {
		return false
	}
	return u.Profile.IsActionAllowed(index, collection, controller, action, ctx)
}

// Package auth provides utilities for authenticating connections to the
// gateway. A scheme validates a client-supplied secret and resolves it to a
// stored user identity.
package auth

import (
	"encoding/json"
)

// AuthErr is a structure for reporting an error condition.
type AuthErr string

func (e AuthErr) Error() string {
	return string(e)
}

const (
	// ErrInternal means DB or other internal failure.
	ErrInternal = AuthErr("internal")
	// ErrMalformed means the secret cannot be parsed or otherwise wrong.
	ErrMalformed = AuthErr("malformed")
	// ErrFailed means authentication failed (wrong login or password, etc).
	ErrFailed = AuthErr("failed")
	// ErrExpired means the secret has expired.
	ErrExpired = AuthErr("expired")
	// ErrUnsupported means an operation is not supported by the scheme.
	ErrUnsupported = AuthErr("unsupported")
)

// AuthHandler is the interface which auth schemes must implement.
type AuthHandler interface {
	// Init initializes the handler taking config string.
	Init(jsonconf json.RawMessage) error

	// Authenticate checks the client-provided secret and returns the ID of
	// the authenticated user.
	Authenticate(secret []byte) (string, error)

	// GenSecret generates a new secret for the given user, if the scheme
	// supports it. Fails with ErrUnsupported otherwise.
	GenSecret(userId string) (string, error)
}

var handlers = make(map[string]AuthHandler)

// RegisterAuthScheme registers an authentication handler under its scheme
// name. Panics on a duplicate or nil handler.
func RegisterAuthScheme(name string, handler AuthHandler) {
	if handler == nil {
		panic("auth: scheme handler is nil")
	}
	if _, ok := handlers[name]; ok {
		panic("auth: scheme '" + name + "' is already registered")
	}
	handlers[name] = handler
}

// GetAuthHandler returns the handler of the named scheme, nil if absent.
func GetAuthHandler(name string) AuthHandler {
	return handlers[name]
}

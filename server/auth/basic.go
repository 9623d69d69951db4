package auth

// Basic authentication: "login:password" checked against the bcrypt hash in
// the stored user definition.

import (
	"bytes"
	"encoding/json"

	"golang.org/x/crypto/bcrypt"

	"github.com/gs7776/kuzzle/server/store"
)

// BasicAuth is the login/password authentication scheme.
type BasicAuth struct{}

// Init initializes the basic scheme. It has no configuration.
func (BasicAuth) Init(jsonconf json.RawMessage) error {
	return nil
}

// Authenticate checks login and password against the stored user definition.
func (BasicAuth) Authenticate(secret []byte) (string, error) {
	splitAt := bytes.Index(secret, []byte(":"))
	if splitAt < 1 {
		return "", ErrMalformed
	}
	login := string(secret[:splitAt])
	password := secret[splitAt+1:]

	def, err := store.Security.GetUser(login)
	if err != nil {
		return "", ErrInternal
	}
	if def == nil || len(def.Secret) == 0 {
		return "", ErrFailed
	}

	if err = bcrypt.CompareHashAndPassword(def.Secret, password); err != nil {
		return "", ErrFailed
	}

	return def.Id, nil
}

// GenSecret is not supported: basic secrets are provisioned, not issued.
func (BasicAuth) GenSecret(userId string) (string, error) {
	return "", ErrUnsupported
}

// HashSecret produces the bcrypt hash stored in a user definition.
func HashSecret(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func init() {
	RegisterAuthScheme("basic", BasicAuth{})
}

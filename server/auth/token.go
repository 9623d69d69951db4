package auth

// Token authentication: stateless HMAC-signed JWTs carrying the user ID.

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth is the JWT token authentication scheme.
type TokenAuth struct {
	key      []byte
	lifetime time.Duration
}

type tokenConfig struct {
	// HMAC signing key, base64 in the config file.
	Key []byte `json:"key"`
	// Token expiration time in seconds.
	ExpireIn int `json:"expire_in"`
}

// Init initializes the token scheme.
func (ta *TokenAuth) Init(jsonconf json.RawMessage) error {
	var config tokenConfig
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("auth_token: failed to parse config: " + err.Error())
	}

	if len(config.Key) < 32 {
		return errors.New("auth_token: the key is missing or too short")
	}
	if config.ExpireIn <= 0 {
		return errors.New("auth_token: invalid expiration value")
	}

	ta.key = config.Key
	ta.lifetime = time.Duration(config.ExpireIn) * time.Second
	return nil
}

// Authenticate parses and verifies the token, returning the user ID it was
// issued to.
func (ta *TokenAuth) Authenticate(secret []byte) (string, error) {
	token, err := jwt.Parse(string(secret),
		func(tok *jwt.Token) (any, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrUnsupported
			}
			return ta.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrFailed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrMalformed
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", ErrMalformed
	}

	return uid, nil
}

// GenSecret issues a new token for the user.
func (ta *TokenAuth) GenSecret(userId string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userId,
		"iat": now.Unix(),
		"exp": now.Add(ta.lifetime).Unix(),
	})

	signed, err := token.SignedString(ta.key)
	if err != nil {
		return "", ErrInternal
	}
	return signed, nil
}

func init() {
	RegisterAuthScheme("token", &TokenAuth{})
}

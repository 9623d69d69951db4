// Package types declares data types and the error taxonomy shared by the
// storage facade, the database adapters and the gateway core.
package types

import (
	"time"
)

// StoreError satisfies the error interface while allowing constant values for
// direct comparison.
type StoreError string

func (s StoreError) Error() string {
	return string(s)
}

const (
	// ErrInternal means DB or other unclassified internal failure.
	ErrInternal = StoreError("internal")
	// ErrMalformed means the request cannot be parsed or otherwise wrong.
	ErrMalformed = StoreError("malformed")
	// ErrFailed means authentication failed.
	ErrFailed = StoreError("failed")
	// ErrPermissionDenied means the user does not hold the required permission.
	ErrPermissionDenied = StoreError("denied")
	// ErrNotFound means the object was not found.
	ErrNotFound = StoreError("not found")
	// ErrAlreadyExists means the object cannot be created because it exists.
	ErrAlreadyExists = StoreError("already exists")
	// ErrPreconditionFailed means a specification or option constraint was
	// violated.
	ErrPreconditionFailed = StoreError("precondition failed")
	// ErrUnsupported means the operation is not supported by the adapter.
	ErrUnsupported = StoreError("unsupported")
)

// Document is a stored JSON document together with its storage metadata.
type Document struct {
	// Document ID, unique within its collection.
	Id string `json:"_id"`
	// Timestamp of document creation.
	CreatedAt time.Time `json:"createdAt"`
	// Timestamp of the last modification.
	UpdatedAt time.Time `json:"updatedAt"`
	// Decoded document body.
	Content map[string]any `json:"content"`
}

// Query is a storage engine search request: equality terms over document
// fields plus paging. The storage engine's own query language is out of
// scope; adapters translate these terms into their native form.
type Query struct {
	// Field name to required value.
	Filter map[string]any
	// Maximum number of documents to return, 0 for the adapter default.
	Limit int
	// Number of documents to skip.
	Offset int
}

// RoleDef is the persisted shape of a security role:
// index -> collection -> "controller:action" -> restriction.
// A restriction is JSON true (allow), false (deny), or an object
// {"test": "<condition name>"} evaluated against the request context.
type RoleDef struct {
	Id      string                               `json:"_id"`
	Indexes map[string]map[string]map[string]any `json:"indexes"`
}

// ProfileDef is the persisted shape of a security profile: an ordered list
// of role identifiers.
type ProfileDef struct {
	Id    string   `json:"_id"`
	Roles []string `json:"roles"`
}

// UserDef is the persisted shape of a user: a profile reference plus an
// optional bcrypt hash of the login secret.
type UserDef struct {
	Id        string `json:"_id"`
	ProfileId string `json:"profile"`
	Secret    []byte `json:"secret,omitempty"`
}

// FieldSpec is one field's entry in a collection validation specification.
type FieldSpec struct {
	// Name of the registered validation type, e.g. "numeric".
	Type string `json:"type"`
	// Type-specific options, e.g. {"range": {"min": 0}}.
	Options map[string]any `json:"typeOptions,omitempty"`
	// Reject documents which do not carry the field.
	Mandatory bool `json:"mandatory,omitempty"`
}

// SpecDef is the persisted validation specification of one collection.
type SpecDef struct {
	Index      string               `json:"index"`
	Collection string               `json:"collection"`
	Fields     map[string]FieldSpec `json:"fields"`
}

// TimeNow returns current wall time in UTC rounded to milliseconds.
func TimeNow() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}

// Package adapter contains the interfaces to be implemented by the database adapter.
package adapter

import (
	"encoding/json"

	t "github.com/gs7776/kuzzle/server/store/types"
)

// Adapter is the interface that must be implemented by a storage engine
// adapter. The current schema supports a single connection by database type.
type Adapter interface {
	// General

	// Open and configure the adapter.
	Open(config json.RawMessage) error
	// Close the adapter.
	Close() error
	// IsOpen checks if the adapter is ready for use.
	IsOpen() bool
	// GetName returns the name of the adapter.
	GetName() string
	// SetMaxResults configures the maximum number of results to be returned
	// from Search.
	SetMaxResults(val int) error
	// CreateDb creates the database or tables optionally dropping an existing
	// database/tables first.
	CreateDb(reset bool) error
	// Stats returns the DB connection stats object.
	Stats() any

	// Documents

	// Create saves a new document. Fails with types.ErrAlreadyExists if a
	// document with the same ID is already stored in the collection.
	Create(index, collection string, doc *t.Document) error
	// CreateOrReplace saves a document overwriting a previous version if it
	// exists. Returns true if the document was created.
	CreateOrReplace(index, collection string, doc *t.Document) (bool, error)
	// Update applies a partial update to the document content. Returns the
	// updated document. Fails with types.ErrNotFound if the document does not
	// exist.
	Update(index, collection, id string, patch map[string]any) (*t.Document, error)
	// Delete removes the document. Fails with types.ErrNotFound if the
	// document does not exist.
	Delete(index, collection, id string) error
	// Get loads a single document by ID. If the document does not exist the
	// call returns (nil, nil).
	Get(index, collection, id string) (*t.Document, error)
	// Search returns documents matching the query.
	Search(index, collection string, query *t.Query) ([]t.Document, error)
	// Count returns the number of documents matching the query.
	Count(index, collection string, query *t.Query) (int64, error)

	// Collections

	// ListCollections returns the names of all collections stored under the
	// given index. An unknown index yields an empty list.
	ListCollections(index string) ([]string, error)
	// TruncateCollection removes all documents from the collection keeping
	// the collection itself.
	TruncateCollection(index, collection string) error
	// DeleteCollection removes the collection and all its documents.
	DeleteCollection(index, collection string) error
}

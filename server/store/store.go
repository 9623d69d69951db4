// Package store provides methods for registering and accessing database adapters.
package store

import (
	"encoding/json"
	"errors"

	adapter "github.com/gs7776/kuzzle/server/db"
	t "github.com/gs7776/kuzzle/server/store/types"
)

var adp adapter.Adapter
var availableAdapters = make(map[string]adapter.Adapter)

// Unique ID generator.
var uGen t.UidGenerator

// SystemIndex is the internal index holding security definitions and
// collection validation specifications.
const SystemIndex = "%system"

type configType struct {
	// 16-byte key for XTEA. Used to initialize types.UidGenerator.
	UidKey []byte `json:"uid_key"`
	// Maximum number of results to return from adapter.
	MaxResults int `json:"max_results"`
	// DB adapter name to use. Should be one of those specified in `Adapters`.
	UseAdapter string `json:"use_adapter"`
	// Configurations for individual adapters.
	Adapters map[string]json.RawMessage `json:"adapters"`
}

func openAdapter(workerId int, jsonconf json.RawMessage) error {
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("store: failed to parse config: " + err.Error() + "(" + string(jsonconf) + ")")
	}

	if adp == nil {
		if len(config.UseAdapter) > 0 {
			// Adapter name specified explicitly.
			if ad, ok := availableAdapters[config.UseAdapter]; ok {
				adp = ad
			} else {
				return errors.New("store: " + config.UseAdapter + " adapter is not available in this binary")
			}
		} else if len(availableAdapters) == 1 {
			// Default to the only entry in availableAdapters.
			for _, v := range availableAdapters {
				adp = v
			}
		} else {
			return errors.New("store: db adapter is not specified. Please set `store_config.use_adapter` in the config")
		}
	}

	if adp.IsOpen() {
		return errors.New("store: connection is already opened")
	}

	// Initialize snowflake.
	if workerId < 0 || workerId > 1023 {
		return errors.New("store: invalid worker ID")
	}

	if err := uGen.Init(uint(workerId), config.UidKey); err != nil {
		return errors.New("store: failed to init snowflake: " + err.Error())
	}

	if err := adp.SetMaxResults(config.MaxResults); err != nil {
		return err
	}

	var adapterConfig json.RawMessage
	if config.Adapters != nil {
		adapterConfig = config.Adapters[adp.GetName()]
	}

	return adp.Open(adapterConfig)
}

// PersistentStorageInterface defines methods used for interaction with
// persistent storage.
type PersistentStorageInterface interface {
	Open(workerId int, jsonconf json.RawMessage) error
	Close() error
	IsOpen() bool
	GetAdapterName() string
	InitDb(jsonconf json.RawMessage, reset bool) error
	GetUidString() string
	DbStats() func() any
}

// Store is the main object for interacting with persistent storage.
var Store PersistentStorageInterface = storeObj{}

type storeObj struct{}

// Open initializes the persistence system. Adapter holds a connection pool
// for a database instance.
//
//	workerId - the worker ID to use for snowflake initialization
//	jsonconf - configuration string
func (storeObj) Open(workerId int, jsonconf json.RawMessage) error {
	return openAdapter(workerId, jsonconf)
}

// Close terminates connection to persistent storage.
func (storeObj) Close() error {
	if adp.IsOpen() {
		return adp.Close()
	}

	return nil
}

// IsOpen checks if persistent storage connection has been initialized.
func (storeObj) IsOpen() bool {
	if adp != nil {
		return adp.IsOpen()
	}

	return false
}

// GetAdapterName returns the name of the current adapter.
func (storeObj) GetAdapterName() string {
	if adp != nil {
		return adp.GetName()
	}

	return ""
}

// InitDb creates and configures a new database instance. If 'reset' is true
// it will first attempt to drop an existing database. If jsonconf is nil it
// will assume that the adapter is already open. If it's non-nil and the
// adapter is not open, it will use the config string to open the adapter
// first.
func (s storeObj) InitDb(jsonconf json.RawMessage, reset bool) error {
	if !s.IsOpen() {
		if err := openAdapter(1, jsonconf); err != nil {
			return err
		}
	}
	return adp.CreateDb(reset)
}

// RegisterAdapter makes a persistence adapter available.
// If Register is called twice or if the adapter is nil, it panics.
func RegisterAdapter(a adapter.Adapter) {
	if a == nil {
		panic("store: Register adapter is nil")
	}

	adapterName := a.GetName()
	if _, ok := availableAdapters[adapterName]; ok {
		panic("store: adapter '" + adapterName + "' is already registered")
	}
	availableAdapters[adapterName] = a
}

// GetUidString generates a unique ID as a string.
func (storeObj) GetUidString() string {
	return uGen.GetStr()
}

// DbStats returns a callback returning db connection stats object.
func (storeObj) DbStats() func() any {
	if !Store.IsOpen() {
		return nil
	}
	return func() any {
		return adp.Stats()
	}
}

// DocumentsObjMapperInterface is the set of document operations the gateway
// routes to the storage engine.
type DocumentsObjMapperInterface interface {
	Create(index, collection string, doc *t.Document) error
	CreateOrReplace(index, collection string, doc *t.Document) (bool, error)
	Update(index, collection, id string, patch map[string]any) (*t.Document, error)
	Delete(index, collection, id string) error
	Get(index, collection, id string) (*t.Document, error)
	Search(index, collection string, query *t.Query) ([]t.Document, error)
	Count(index, collection string, query *t.Query) (int64, error)
}

// DocumentsPersistenceInterface is an instance of DocumentsObjMapperInterface
// to communicate with the document mapper.
type documentsMapper struct{}

// Documents is the ObjMapper for documents.
var Documents DocumentsObjMapperInterface = documentsMapper{}

// Create saves a new document assigning it an ID and timestamps.
func (documentsMapper) Create(index, collection string, doc *t.Document) error {
	if doc.Id == "" {
		doc.Id = uGen.GetStr()
	}
	doc.CreatedAt = t.TimeNow()
	doc.UpdatedAt = doc.CreatedAt
	return adp.Create(index, collection, doc)
}

// CreateOrReplace saves a document overwriting a previous version.
func (documentsMapper) CreateOrReplace(index, collection string, doc *t.Document) (bool, error) {
	doc.CreatedAt = t.TimeNow()
	doc.UpdatedAt = doc.CreatedAt
	return adp.CreateOrReplace(index, collection, doc)
}

// Update applies a partial update to a stored document.
func (documentsMapper) Update(index, collection, id string, patch map[string]any) (*t.Document, error) {
	return adp.Update(index, collection, id, patch)
}

// Delete removes a stored document.
func (documentsMapper) Delete(index, collection, id string) error {
	return adp.Delete(index, collection, id)
}

// Get loads a single document. Returns (nil, nil) if the document is missing.
func (documentsMapper) Get(index, collection, id string) (*t.Document, error) {
	return adp.Get(index, collection, id)
}

// Search returns documents matching a query.
func (documentsMapper) Search(index, collection string, query *t.Query) ([]t.Document, error) {
	return adp.Search(index, collection, query)
}

// Count returns the number of documents matching a query.
func (documentsMapper) Count(index, collection string, query *t.Query) (int64, error) {
	return adp.Count(index, collection, query)
}

// CollectionsObjMapperInterface is the set of collection-level operations the
// gateway routes to the storage engine.
type CollectionsObjMapperInterface interface {
	List(index string) ([]string, error)
	Truncate(index, collection string) error
	Delete(index, collection string) error
}

type collectionsMapper struct{}

// Collections is the ObjMapper for collections.
var Collections CollectionsObjMapperInterface = collectionsMapper{}

// List returns the names of stored collections under an index.
func (collectionsMapper) List(index string) ([]string, error) {
	return adp.ListCollections(index)
}

// Truncate removes all documents from a collection.
func (collectionsMapper) Truncate(index, collection string) error {
	return adp.TruncateCollection(index, collection)
}

// Delete drops a collection.
func (collectionsMapper) Delete(index, collection string) error {
	return adp.DeleteCollection(index, collection)
}

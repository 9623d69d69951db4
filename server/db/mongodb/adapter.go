// Package mongodb is a storage engine adapter for MongoDB.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	b "go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gs7776/kuzzle/server/store"
	t "github.com/gs7776/kuzzle/server/store/types"
)

// adapter holds MongoDB connection data.
type adapter struct {
	conn       *mdb.Client
	db         *mdb.Database
	dbName     string
	maxResults int
	ctx        context.Context
}

const (
	defaultHost     = "localhost:27017"
	defaultDatabase = "gateway"

	adapterName = "mongodb"

	defaultMaxResults = 1024
)

// See https://godoc.org/go.mongodb.org/mongo-driver/mongo/options#ClientOptions for explanations.
type configType struct {
	Addresses      any    `json:"addresses,omitempty"`
	ConnectTimeout int    `json:"timeout,omitempty"`
	Database       string `json:"database,omitempty"`
	ReplicaSet     string `json:"replica_set,omitempty"`

	AuthSource string `json:"auth_source,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Open initializes a mongodb session.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	if a.conn != nil {
		return errors.New("adapter mongodb is already connected")
	}

	var err error
	var config configType
	if err = json.Unmarshal(jsonconfig, &config); err != nil {
		return errors.New("adapter mongodb failed to parse config: " + err.Error())
	}

	var opts mdbopts.ClientOptions

	if config.Addresses == nil {
		opts.SetHosts([]string{defaultHost})
	} else if host, ok := config.Addresses.(string); ok {
		opts.SetHosts([]string{host})
	} else if ihosts, ok := config.Addresses.([]any); ok {
		hosts := make([]string, 0, len(ihosts))
		for _, ih := range ihosts {
			h, ok := ih.(string)
			if !ok || h == "" {
				return errors.New("adapter mongodb invalid config.Addresses value")
			}
			hosts = append(hosts, h)
		}
		opts.SetHosts(hosts)
	} else {
		return errors.New("adapter mongodb failed to parse config.Addresses")
	}

	if config.Database == "" {
		config.Database = defaultDatabase
	}
	a.dbName = config.Database

	if config.ReplicaSet != "" {
		opts.SetReplicaSet(config.ReplicaSet)
	}

	if config.Username != "" {
		var passwordSet bool
		if config.AuthSource == "" {
			config.AuthSource = "admin"
		}
		if config.Password != "" {
			passwordSet = true
		}
		opts.SetAuth(
			mdbopts.Credential{
				AuthMechanism: "SCRAM-SHA-256",
				AuthSource:    config.AuthSource,
				Username:      config.Username,
				Password:      config.Password,
				PasswordSet:   passwordSet,
			})
	}

	if config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(time.Duration(config.ConnectTimeout) * time.Second)
	}

	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}

	a.ctx = context.Background()
	a.conn, err = mdb.Connect(a.ctx, &opts)
	if err != nil {
		return err
	}
	a.db = a.conn.Database(a.dbName)

	return nil
}

// Close the adapter.
func (a *adapter) Close() error {
	var err error
	if a.conn != nil {
		err = a.conn.Disconnect(a.ctx)
		a.conn = nil
	}
	return err
}

// IsOpen checks if the adapter is ready for use.
func (a *adapter) IsOpen() bool {
	return a.conn != nil
}

// GetName returns the name of the adapter.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures the maximum number of results returned from
// Search.
func (a *adapter) SetMaxResults(val int) error {
	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}
	return nil
}

// CreateDb initializes the storage. MongoDB creates collections lazily;
// reset drops the whole database.
func (a *adapter) CreateDb(reset bool) error {
	if reset {
		return a.db.Drop(a.ctx)
	}
	return nil
}

// Stats returns the DB connection stats object.
func (a *adapter) Stats() any {
	if a.db == nil {
		return nil
	}
	var result b.M
	if err := a.db.RunCommand(a.ctx, b.D{{Key: "serverStatus", Value: 1}}).Decode(&result); err != nil {
		return nil
	}
	return result["connections"]
}

// collName maps an (index, collection) pair to a MongoDB collection name.
func collName(index, collection string) string {
	return index + "." + collection
}

// document is the stored representation: content is nested under its own key
// so user field names cannot collide with storage metadata.
type document struct {
	Id        string         `bson:"_id"`
	CreatedAt time.Time      `bson:"createdat"`
	UpdatedAt time.Time      `bson:"updatedat"`
	Content   map[string]any `bson:"content"`
}

func toDocument(d *document) *t.Document {
	return &t.Document{Id: d.Id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt, Content: d.Content}
}

// contentFilter rewrites query terms to address the nested content document.
func contentFilter(query *t.Query) b.M {
	filter := b.M{}
	if query != nil {
		for field, value := range query.Filter {
			filter["content."+field] = value
		}
	}
	return filter
}

// Create saves a new document.
func (a *adapter) Create(index, collection string, doc *t.Document) error {
	_, err := a.db.Collection(collName(index, collection)).InsertOne(a.ctx, &document{
		Id:        doc.Id,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Content:   doc.Content,
	})
	if err != nil {
		if mdb.IsDuplicateKeyError(err) {
			return t.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CreateOrReplace saves a document overwriting a previous version.
func (a *adapter) CreateOrReplace(index, collection string, doc *t.Document) (bool, error) {
	upsert := true
	result, err := a.db.Collection(collName(index, collection)).ReplaceOne(a.ctx,
		b.M{"_id": doc.Id},
		&document{Id: doc.Id, CreatedAt: doc.CreatedAt, UpdatedAt: doc.UpdatedAt, Content: doc.Content},
		&mdbopts.ReplaceOptions{Upsert: &upsert})
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

// Update applies a partial update to the document content.
func (a *adapter) Update(index, collection, id string, patch map[string]any) (*t.Document, error) {
	set := b.M{"updatedat": t.TimeNow()}
	for field, value := range patch {
		set["content."+field] = value
	}

	after := mdbopts.After
	var updated document
	err := a.db.Collection(collName(index, collection)).FindOneAndUpdate(a.ctx,
		b.M{"_id": id},
		b.M{"$set": set},
		&mdbopts.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&updated)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return toDocument(&updated), nil
}

// Delete removes the document.
func (a *adapter) Delete(index, collection, id string) error {
	result, err := a.db.Collection(collName(index, collection)).DeleteOne(a.ctx, b.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return t.ErrNotFound
	}
	return nil
}

// Get loads a single document by ID.
func (a *adapter) Get(index, collection, id string) (*t.Document, error) {
	var doc document
	err := a.db.Collection(collName(index, collection)).FindOne(a.ctx, b.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return toDocument(&doc), nil
}

// Search returns documents matching the query.
func (a *adapter) Search(index, collection string, query *t.Query) ([]t.Document, error) {
	limit := a.maxResults
	var offset int
	if query != nil {
		if query.Limit > 0 && query.Limit < limit {
			limit = query.Limit
		}
		offset = query.Offset
	}

	findOpts := new(mdbopts.FindOptions).SetLimit(int64(limit)).SetSkip(int64(offset))
	cur, err := a.db.Collection(collName(index, collection)).Find(a.ctx, contentFilter(query), findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(a.ctx)

	var result []t.Document
	for cur.Next(a.ctx) {
		var doc document
		if err = cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, *toDocument(&doc))
	}
	return result, cur.Err()
}

// Count returns the number of documents matching the query.
func (a *adapter) Count(index, collection string, query *t.Query) (int64, error) {
	return a.db.Collection(collName(index, collection)).CountDocuments(a.ctx, contentFilter(query))
}

// ListCollections returns the names of all collections stored under the
// given index.
func (a *adapter) ListCollections(index string) ([]string, error) {
	prefix := index + "."
	names, err := a.db.ListCollectionNames(a.ctx, b.M{"name": b.M{"$regex": "^" + escapeRegex(prefix)}})
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(names))
	for _, name := range names {
		result = append(result, strings.TrimPrefix(name, prefix))
	}
	return result, nil
}

// TruncateCollection removes all documents from the collection.
func (a *adapter) TruncateCollection(index, collection string) error {
	_, err := a.db.Collection(collName(index, collection)).DeleteMany(a.ctx, b.M{})
	return err
}

// DeleteCollection removes the collection and all its documents.
func (a *adapter) DeleteCollection(index, collection string) error {
	return a.db.Collection(collName(index, collection)).Drop(a.ctx)
}

// escapeRegex escapes regular expression metacharacters in a literal prefix.
func escapeRegex(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func init() {
	store.RegisterAdapter(&adapter{})
}

package store

// Persisted security definitions and collection validation specifications.
// Both live in the internal SystemIndex and are read through the same
// adapter as ordinary documents.

import (
	"encoding/json"

	t "github.com/gs7776/kuzzle/server/store/types"
)

const (
	rolesCollection       = "roles"
	profilesCollection    = "profiles"
	usersCollection       = "users"
	validationsCollection = "validations"
)

// SecurityObjMapperInterface gives access to stored Role/Profile/User
// definitions.
type SecurityObjMapperInterface interface {
	GetRole(id string) (*t.RoleDef, error)
	PutRole(def *t.RoleDef) error
	GetProfile(id string) (*t.ProfileDef, error)
	PutProfile(def *t.ProfileDef) error
	GetUser(id string) (*t.UserDef, error)
	PutUser(def *t.UserDef) error
}

type securityMapper struct{}

// Security is the ObjMapper for stored security definitions.
var Security SecurityObjMapperInterface = securityMapper{}

// defGet reads one definition document and decodes its content into def.
// A missing document yields (found=false, err=nil).
func defGet(collection, id string, def any) (bool, error) {
	doc, err := adp.Get(SystemIndex, collection, id)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}

	raw, err := json.Marshal(doc.Content)
	if err != nil {
		return false, err
	}
	if err = json.Unmarshal(raw, def); err != nil {
		return false, err
	}
	return true, nil
}

// defPut stores one definition document, overwriting a previous version.
func defPut(collection, id string, def any) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return err
	}
	var content map[string]any
	if err = json.Unmarshal(raw, &content); err != nil {
		return err
	}

	doc := &t.Document{Id: id, CreatedAt: t.TimeNow(), UpdatedAt: t.TimeNow(), Content: content}
	_, err = adp.CreateOrReplace(SystemIndex, collection, doc)
	return err
}

// GetRole reads a stored role definition. Returns (nil, nil) if missing.
func (securityMapper) GetRole(id string) (*t.RoleDef, error) {
	var def t.RoleDef
	found, err := defGet(rolesCollection, id, &def)
	if err != nil || !found {
		return nil, err
	}
	def.Id = id
	return &def, nil
}

// PutRole stores a role definition.
func (securityMapper) PutRole(def *t.RoleDef) error {
	return defPut(rolesCollection, def.Id, def)
}

// GetProfile reads a stored profile definition. Returns (nil, nil) if missing.
func (securityMapper) GetProfile(id string) (*t.ProfileDef, error) {
	var def t.ProfileDef
	found, err := defGet(profilesCollection, id, &def)
	if err != nil || !found {
		return nil, err
	}
	def.Id = id
	return &def, nil
}

// PutProfile stores a profile definition.
func (securityMapper) PutProfile(def *t.ProfileDef) error {
	return defPut(profilesCollection, def.Id, def)
}

// GetUser reads a stored user definition. Returns (nil, nil) if missing.
func (securityMapper) GetUser(id string) (*t.UserDef, error) {
	var def t.UserDef
	found, err := defGet(usersCollection, id, &def)
	if err != nil || !found {
		return nil, err
	}
	def.Id = id
	return &def, nil
}

// PutUser stores a user definition.
func (securityMapper) PutUser(def *t.UserDef) error {
	return defPut(usersCollection, def.Id, def)
}

// ValidationsObjMapperInterface gives access to stored collection validation
// specifications.
type ValidationsObjMapperInterface interface {
	Get(index, collection string) (*t.SpecDef, error)
	Put(def *t.SpecDef) error
}

type validationsMapper struct{}

// Validations is the ObjMapper for collection validation specifications.
var Validations ValidationsObjMapperInterface = validationsMapper{}

func specDocId(index, collection string) string {
	return index + "/" + collection
}

// Get reads the validation specification of one collection.
// Returns (nil, nil) if the collection has no specification.
func (validationsMapper) Get(index, collection string) (*t.SpecDef, error) {
	var def t.SpecDef
	found, err := defGet(validationsCollection, specDocId(index, collection), &def)
	if err != nil || !found {
		return nil, err
	}
	return &def, nil
}

// Put stores the validation specification of one collection.
func (validationsMapper) Put(def *t.SpecDef) error {
	return defPut(validationsCollection, specDocId(def.Index, def.Collection), def)
}

package main

import (
	"log"

	"github.com/gs7776/kuzzle/server/auth"
	"github.com/gs7776/kuzzle/server/store"
	t "github.com/gs7776/kuzzle/server/store/types"
	"github.com/gs7776/kuzzle/server/validate"
)

// Data is the decoded shape of a sample data file:
//
//	{
//	  "roles":    [{"_id": "writer", "indexes": {"*": {"*": {"write:*": true}}}}],
//	  "profiles": [{"_id": "editor", "roles": ["writer"]}],
//	  "users":    [{"_id": "alice", "profile": "editor", "password": "alice123"}],
//	  "specs":    [{"index": "idx", "collection": "people", "fields": {...}}],
//	  "documents": [{"index": "idx", "collection": "people",
//	                 "content": {"_id": "d1", "name": "Alice"}}]
//	}
type Data struct {
	Roles     []t.RoleDef    `json:"roles"`
	Profiles  []t.ProfileDef `json:"profiles"`
	Users     []sampleUser   `json:"users"`
	Specs     []t.SpecDef    `json:"specs"`
	Documents []struct {
		Index      string         `json:"index"`
		Collection string         `json:"collection"`
		Content    map[string]any `json:"content"`
	} `json:"documents"`
}

type sampleUser struct {
	Id        string `json:"_id"`
	ProfileId string `json:"profile"`
	Password  string `json:"password"`
}

func genDb(data *Data) {
	for i := range data.Roles {
		if err := store.Security.PutRole(&data.Roles[i]); err != nil {
			log.Fatalln("Failed to store role", data.Roles[i].Id+":", err)
		}
	}
	log.Println("Stored roles:", len(data.Roles))

	for i := range data.Profiles {
		if err := store.Security.PutProfile(&data.Profiles[i]); err != nil {
			log.Fatalln("Failed to store profile", data.Profiles[i].Id+":", err)
		}
	}
	log.Println("Stored profiles:", len(data.Profiles))

	for _, user := range data.Users {
		def := &t.UserDef{Id: user.Id, ProfileId: user.ProfileId}
		if user.Password != "" {
			secret, err := auth.HashSecret(user.Password)
			if err != nil {
				log.Fatalln("Failed to hash password for", user.Id+":", err)
			}
			def.Secret = secret
		}
		if err := store.Security.PutUser(def); err != nil {
			log.Fatalln("Failed to store user", user.Id+":", err)
		}
	}
	log.Println("Stored users:", len(data.Users))

	for i := range data.Specs {
		if _, err := validate.NewValidator(data.Specs[i].Fields); err != nil {
			log.Fatalln("Invalid validation spec for",
				data.Specs[i].Index+"/"+data.Specs[i].Collection+":", err)
		}
		if err := store.Validations.Put(&data.Specs[i]); err != nil {
			log.Fatalln("Failed to store validation spec for",
				data.Specs[i].Index+"/"+data.Specs[i].Collection+":", err)
		}
	}
	log.Println("Stored validation specs:", len(data.Specs))

	var created int
	for _, entry := range data.Documents {
		id, _ := entry.Content["_id"].(string)
		content := make(map[string]any, len(entry.Content))
		for key, val := range entry.Content {
			if key != "_id" {
				content[key] = val
			}
		}
		doc := &t.Document{Id: id, Content: content}
		if err := store.Documents.Create(entry.Index, entry.Collection, doc); err != nil {
			log.Fatalln("Failed to store document in",
				entry.Index+"/"+entry.Collection+":", err)
		}
		created++
	}
	log.Println("Stored documents:", created)
}

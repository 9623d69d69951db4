// Command gateway-db initializes the gateway database: creates the schema,
// provisions the default security definitions and optionally loads sample
// data from a JSON file.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	jcr "github.com/tinode/jsonco"

	_ "github.com/gs7776/kuzzle/server/db/mongodb"
	_ "github.com/gs7776/kuzzle/server/db/postgres"
	"github.com/gs7776/kuzzle/server/security"
	"github.com/gs7776/kuzzle/server/store"
)

type configType struct {
	StoreConfig json.RawMessage `json:"store_config"`
}

func main() {
	var reset = flag.Bool("reset", false, "force database reset")
	var datafile = flag.String("data", "", "name of file with sample data to load")
	var conffile = flag.String("config", "./gateway.conf", "config of the database connection")

	flag.Parse()

	var config configType
	if file, err := os.Open(*conffile); err != nil {
		log.Fatalln("Failed to read config file:", err)
	} else {
		jr := jcr.New(file)
		if err = json.NewDecoder(jr).Decode(&config); err != nil {
			switch jerr := err.(type) {
			case *json.UnmarshalTypeError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				log.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
					jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
			case *json.SyntaxError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				log.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
					lnum, cnum, jerr.Offset, jerr.Error())
			default:
				log.Fatalln("Failed to parse config file:", err)
			}
		}
		file.Close()
	}

	var data *Data
	if *datafile != "" {
		raw, err := os.ReadFile(*datafile)
		if err != nil {
			log.Fatalln("Failed to read sample data file:", err)
		}
		data = &Data{}
		if err = json.Unmarshal(raw, data); err != nil {
			log.Fatalln("Failed to parse sample data:", err)
		}
	}

	if *reset {
		log.Println("Warning: dropping the existing database")
	}
	if err := store.Store.InitDb(config.StoreConfig, *reset); err != nil {
		log.Fatalln("Failed to initialize the database:", err)
	}
	defer store.Store.Close()
	log.Println("Database initialized, adapter:", store.Store.GetAdapterName())

	if err := security.ProvisionDefaults(); err != nil {
		log.Fatalln("Failed to provision default security definitions:", err)
	}
	log.Println("Default security definitions provisioned")

	if data != nil {
		genDb(data)
	}

	log.Println("All done.")
}

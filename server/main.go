/******************************************************************************
 *
 *  Description :
 *
 *    Setup & initialization.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gh "github.com/gorilla/handlers"
	jcr "github.com/tinode/jsonco"

	"github.com/gs7776/kuzzle/server/auth"
	_ "github.com/gs7776/kuzzle/server/db/mongodb"
	_ "github.com/gs7776/kuzzle/server/db/postgres"
	"github.com/gs7776/kuzzle/server/logs"
	"github.com/gs7776/kuzzle/server/queue"
	"github.com/gs7776/kuzzle/server/security"
	"github.com/gs7776/kuzzle/server/store"
)

const (
	// currentVersion is the API version.
	currentVersion = "0.1"

	// defaultMaxMessageSize is the default maximum message size.
	defaultMaxMessageSize = 1 << 19 // 512K
)

// Build timestamp set by the compiler.
var buildstamp = "undef"

var globals struct {
	// Store of live sessions.
	sessionStore *SessionStore
	// Subscription room registry.
	registry *RoomRegistry
	// Request funnel.
	funnel *Funnel
	// Lifecycle hook bus.
	hooks *HookBus
	// Security resolution chain.
	security *security.Repositories
	// Resolved anonymous user, bound to every unauthenticated session.
	anonUser *security.User

	// Channel for stats updates, see stats.go.
	statsUpdate chan *varUpdate

	// Maximum message size allowed from the clients.
	maxMessageSize int64

	// Strict-Transport-Security value, see http.go.
	tlsStrictMaxAge string
}

type configType struct {
	// HTTP(S) address:port to listen on.
	Listen string `json:"listen"`
	// URL path for exposing runtime stats, "-" to disable.
	ExpvarPath string `json:"expvar"`
	// Maximum message size allowed from client, 0 for default.
	MaxMessageSize int64 `json:"max_message_size"`
	// Snowflake worker ID, 0 (default) to 1023.
	WorkerID int `json:"worker_id"`
	// Configuration of the HTTP request logger.
	AccessLog string `json:"access_log"`

	// Configs for subsystems:
	Store json.RawMessage            `json:"store_config"`
	Auth  map[string]json.RawMessage `json:"auth_config"`
	Queue json.RawMessage            `json:"queue_config"`
	TLS   json.RawMessage            `json:"tls"`
}

func main() {
	executable, _ := os.Executable()

	logs.Info.Printf("Server v%s:%s pid %d started with processes: %d",
		currentVersion, buildstamp, os.Getpid(), runtime.GOMAXPROCS(runtime.NumCPU()))

	var configfile = flag.String("config", "gateway.conf", "Path to config file.")
	var listenOn = flag.String("listen", "", "Override address and port to listen on.")
	var expvarPath = flag.String("expvar", "", "Override the path where runtime stats are exposed.")
	var pprofUrl = flag.String("pprof_url", "", "Debugging only! URL path for exposing profiling info. Disabled if not set.")
	var threadzUrl = flag.String("threadz_url", "", "Debugging only! URL path for exposing goroutine stack traces. Disabled if not set.")
	flag.Parse()

	*configfile = toAbsolutePath(filepath.Dir(executable), *configfile)
	logs.Info.Printf("Using config from '%s'", *configfile)

	var config configType
	if file, err := os.Open(*configfile); err != nil {
		logs.Err.Fatal("Failed to read config file:", err)
	} else {
		jr := jcr.New(file)
		if err = json.NewDecoder(jr).Decode(&config); err != nil {
			switch jerr := err.(type) {
			case *json.UnmarshalTypeError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
					jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
			case *json.SyntaxError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
					lnum, cnum, jerr.Offset, jerr.Error())
			default:
				logs.Err.Fatal("Failed to parse config file:", err)
			}
		}
		file.Close()
	}

	if *listenOn != "" {
		config.Listen = *listenOn
	}
	if *expvarPath != "" {
		config.ExpvarPath = *expvarPath
	}
	if config.ExpvarPath == "" {
		config.ExpvarPath = "/debug/vars"
	}

	globals.maxMessageSize = config.MaxMessageSize
	if globals.maxMessageSize <= 0 {
		globals.maxMessageSize = defaultMaxMessageSize
	}

	if err := store.Store.Open(config.WorkerID, config.Store); err != nil {
		logs.Err.Fatal("Failed to connect to persistent storage:", err)
	}
	defer func() {
		store.Store.Close()
		logs.Info.Println("Closed database connection(s)")
		logs.Info.Println("All done, good bye")
	}()
	logs.Info.Println("DB adapter", store.Store.GetAdapterName())

	// Initialize authentication handlers.
	for name, jsconf := range config.Auth {
		if authhdl := auth.GetAuthHandler(name); authhdl == nil {
			logs.Err.Fatalln("Config provided for unknown authentication scheme", name)
		} else if err := authhdl.Init(jsconf); err != nil {
			logs.Err.Fatalln("Failed to init auth scheme", name+":", err)
		}
	}

	// Security resolution chain. The anonymous triple must resolve at
	// startup; failure here is fatal, not a per-request error.
	globals.security = security.NewRepositories()
	if err := security.ProvisionDefaults(); err != nil {
		logs.Err.Fatal("Failed to provision default security definitions:", err)
	}
	anon, err := globals.security.Anonymous()
	if err != nil {
		logs.Err.Fatal("Failed to resolve the anonymous user:", err)
	}
	globals.anonUser = anon

	globals.sessionStore = NewSessionStore()
	globals.registry = NewRoomRegistry()
	globals.hooks = NewHookBus()
	globals.funnel = NewFunnel(globals.hooks)

	// Optional AMQP event feed: completed writes go out to a broker for
	// downstream consumers.
	if len(config.Queue) > 0 {
		publisher, err := queue.Open(config.Queue)
		if err != nil {
			logs.Err.Fatal("Failed to connect to the event queue:", err)
		}
		defer publisher.Close()

		for _, event := range []string{"write:create", "write:createOrReplace",
			"write:update", "write:delete", "admin:truncateCollection",
			"admin:deleteCollection"} {
			routingKey := strings.Replace(event, ":", ".", 1)
			globals.hooks.OnAfter(event, func(req *RequestObject, resp *ResponseObject) {
				if resp.Status >= http.StatusBadRequest {
					return
				}
				if err := publisher.Publish(routingKey, resp); err != nil {
					logs.Warn.Println("queue: publish failed:", err)
				}
			})
		}
		logs.Info.Println("Publishing document events to AMQP")
	}

	mux := http.NewServeMux()

	// Exposing values for statistics and monitoring.
	evpath := config.ExpvarPath
	statsInit(mux, evpath)
	statsRegisterInt("Version")
	decVersion := base10Version(parseVersion(currentVersion))
	statsSet("Version", decVersion)
	statsRegisterInt("LiveSessions")
	statsRegisterInt("TotalSessions")
	statsRegisterInt("LiveRooms")
	statsRegisterInt("TotalRooms")
	statsRegisterInt("LiveSubscriptions")
	statsRegisterInt("RequestsReceivedTotal")
	statsRegisterInt("RequestsCompletedTotal")
	statsRegisterInt("RequestsRejectedTotal")
	statsRegisterInt("RequestsForbiddenTotal")
	statsRegisterInt("RequestsFailedTotal")
	statsRegisterInt("IncomingMessagesWebsockTotal")
	statsRegisterInt("OutgoingMessagesWebsockTotal")
	statsRegisterInt("NotificationsDeliveredTotal")
	statsRegisterInt("DocumentsCreatedTotal")
	statsRegisterInt("LoginsTotal")
	statsRegisterDbStats("DbStats", store.Store.DbStats())

	servePprof(mux, *pprofUrl)
	threadzInit(mux, *threadzUrl)

	// Streaming channels.
	mux.Handle("/v1/channels", gh.CompressHandler(http.HandlerFunc(serveWebSocket)))
	// Requests submitted over plain HTTP POST.
	mux.Handle("/v1/api", gh.CompressHandler(http.HandlerFunc(serveAPI)))

	var handler http.Handler = mux
	if config.AccessLog != "" {
		var out *os.File
		if config.AccessLog == "stdout" {
			out = os.Stdout
		} else if out, err = os.OpenFile(config.AccessLog,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			logs.Err.Fatal("Failed to open access log:", err)
		}
		handler = gh.CombinedLoggingHandler(out, mux)
	}

	logMux := http.NewServeMux()
	logMux.Handle("/", hstsHandler(handler))

	if err := listenAndServe(config.Listen, logMux, config.TLS, signalHandler()); err != nil {
		logs.Err.Fatal(err)
	}
}

// serveAPI handles a single request-response exchange over plain HTTP POST.
// The response is delivered synchronously; subscriptions are not available
// over this transport as there is no channel to deliver notifications to.
func serveAPI(wrt http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		wrt.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var reqObj RequestObject
	if err := json.NewDecoder(req.Body).Decode(&reqObj); err != nil {
		wrt.WriteHeader(http.StatusBadRequest)
		wrt.Write(ErrMalformedReply(nil, "invalid json").serialize())
		return
	}
	reqObj.origin = "http"

	sess, _ := globals.sessionStore.NewSession(nil, "")
	defer sess.cleanUp()

	resp := globals.funnel.Execute(&reqObj, sess)

	wrt.Header().Set("Content-Type", "application/json; charset=utf-8")
	wrt.WriteHeader(resp.Status)
	wrt.Write(resp.serialize())
}

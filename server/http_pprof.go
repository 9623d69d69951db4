// Optional profiling endpoint. When enabled with -pprof_url the handler
// serves any named runtime profile at <configured-path>/<profile-name>;
// see https://golang.org/pkg/runtime/pprof/#Profile for profile names.

package main

import (
	"fmt"
	"net/http"
	"path"
	"runtime/pprof"
	"strings"

	"github.com/gs7776/kuzzle/server/logs"
)

var pprofRoot string

// servePprof mounts the profile handler at the given URL path. An empty
// path or "-" leaves profiling disabled.
func servePprof(mux *http.ServeMux, serveAt string) {
	if serveAt == "" || serveAt == "-" {
		return
	}

	pprofRoot = path.Clean("/"+serveAt) + "/"
	mux.HandleFunc(pprofRoot, profileHandler)

	logs.Info.Printf("pprof: profiling info exposed at '%s'", pprofRoot)
}

func profileHandler(wrt http.ResponseWriter, req *http.Request) {
	wrt.Header().Set("X-Content-Type-Options", "nosniff")
	wrt.Header().Set("Content-Type", "text/plain; charset=utf-8")

	name := strings.TrimPrefix(req.URL.Path, pprofRoot)
	profile := pprof.Lookup(name)
	if profile == nil {
		wrt.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(wrt, "unknown profile '"+name+"'")
		return
	}

	profile.WriteTo(wrt, 2)
}

// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package web is the HTTP query-API transport. It decodes the
// SimpleDB-style Action/indexed-parameter convention, dispatches to a
// *store.Base, and encodes the XML response envelope.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/log"
	"github.com/basicdb/basicdb/store"
)

var server *http.Server

// Setup starts the query-API server and blocks until it is shut down
// via Exit.
func Setup(opts *cnf.Options, backend *store.Base) (err error) {

	log.WithPrefix("web").Infof("Starting web server on port %d", opts.Port.Web)

	mux := http.NewServeMux()
	routes(mux, backend)

	server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port.Web),
		Handler: withMiddleware(mux),
	}

	err = server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err

}

// Exit tears down the server gracefully.
func Exit() {

	log.WithPrefix("web").Infof("Gracefully shutting down %s protocol", "web")

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	server.Shutdown(ctx)

}

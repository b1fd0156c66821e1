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

package web

import (
	"net/http"
	"time"

	"github.com/basicdb/basicdb/log"
)

// maxBodyBytes caps request bodies, mirroring the teacher's mw.Size
// middleware (4MiB here, against the teacher's 4MiB default).
const maxBodyBytes = 1 << 22

// withMiddleware wraps h with the standing request pipeline: recover,
// size limit, access log -- in the order the teacher's mw stack runs
// (Fail, then Size/Type, then Logs).
func withMiddleware(h http.Handler) http.Handler {
	return recoverMiddleware(sizeMiddleware(logMiddleware(h)))
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithPrefix("web").Errorf("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func sizeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithPrefix("web").Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

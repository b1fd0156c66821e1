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

package cli

import (
	"strings"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/log"
)

func setup() {

	// --------------------------------------------------
	// DB
	// --------------------------------------------------

	if opts.DB.Path == "" {
		opts.DB.Path = "memory://"
	}

	// --------------------------------------------------
	// Auth
	// --------------------------------------------------

	if opts.Auth.Auth != "" {

		if opts.Auth.User != "" {
			log.Fatal("Specify only --auth or --auth-user")
		}

		if opts.Auth.Pass != "" {
			log.Fatal("Specify only --auth or --auth-pass")
		}

		both := strings.SplitN(opts.Auth.Auth, ":", 2)

		if len(both) == 2 {
			opts.Auth.User = both[0]
			opts.Auth.Pass = both[1]
		}

	}

	// --------------------------------------------------
	// Ports
	// --------------------------------------------------

	if opts.Port.Web == 0 {
		opts.Port.Web = 8000
	}

	if opts.Port.Web < 0 || opts.Port.Web > 65535 {
		log.Fatalf("Invalid port %d. Please specify a valid port number for --port-web", opts.Port.Web)
	}

	// --------------------------------------------------
	// Logging
	// --------------------------------------------------

	if opts.Logging.Level != "" {

		chk := map[string]bool{
			"trace": true, "debug": true, "info": true,
			"warn": true, "error": true, "fatal": true, "panic": true,
		}

		if !chk[opts.Logging.Level] {
			log.Fatal("Incorrect log level specified")
		}

		log.SetLevel(opts.Logging.Level)

	}

	if opts.Logging.Format != "" {

		chk := map[string]bool{"text": true, "json": true}

		if !chk[opts.Logging.Format] {
			log.Fatal("Incorrect log format specified")
		}

		log.SetFormat(opts.Logging.Format)

	}

	if opts.Logging.Output != "" {

		chk := map[string]bool{"none": true, "stdout": true, "stderr": true}

		if !chk[opts.Logging.Output] {
			log.Fatal("Incorrect log output specified")
		}

		log.SetOutput(opts.Logging.Output)

	}

	cnf.Settings = opts

}

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
	"github.com/spf13/cobra"

	"github.com/basicdb/basicdb/log"
	"github.com/basicdb/basicdb/store"
	"github.com/basicdb/basicdb/web"

	// Blank-imported so each backend's init() registers itself with
	// store.Register before Open is called.
	_ "github.com/basicdb/basicdb/store/boltdb"
	_ "github.com/basicdb/basicdb/store/fsdb"
	_ "github.com/basicdb/basicdb/store/memory"
	_ "github.com/basicdb/basicdb/store/mongodoc"
)

var backend *store.Base

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the query API server",
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		backend, err = store.Open(opts)
		if err != nil {
			log.Fatal(err)
			return err
		}

		return web.Setup(opts, backend)

	},
	PostRun: func(cmd *cobra.Command, args []string) {
		web.Exit()
	},
}

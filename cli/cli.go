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

// Package cli is the cobra-based command-line entry point: it wires
// flags into cnf.Options, then dispatches to start/sql/version.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/log"
)

var opts *cnf.Options

var mainCmd = &cobra.Command{
	Use:   "basicdb",
	Short: "BasicDB command-line interface and server",
}

func init() {

	mainCmd.AddCommand(
		startCmd,
		sqlCmd,
		versionCmd,
	)

	opts = &cnf.Options{}

	mainCmd.PersistentFlags().StringVarP(&opts.DB.Path, "db", "d", "memory://", flag("db"))
	mainCmd.PersistentFlags().StringVarP(&opts.Auth.Auth, "auth", "a", "", flag("auth"))
	mainCmd.PersistentFlags().StringVar(&opts.Auth.User, "auth-user", "", flag("auth-user"))
	mainCmd.PersistentFlags().StringVar(&opts.Auth.Pass, "auth-pass", "", flag("auth-pass"))

	mainCmd.PersistentFlags().IntVar(&opts.Port.Web, "port-web", 8000, flag("port-web"))

	mainCmd.PersistentFlags().StringVar(&opts.Logging.Level, "log", "info", "Logging level: trace, debug, info, warn, error, fatal, panic.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Output, "log-output", "stdout", "Logging output: stdout, stderr, none.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Format, "log-format", "text", "Logging format: text, json.")

	cobra.OnInitialize(setup)

}

// Init runs the cli app.
func Init() {
	if err := mainCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

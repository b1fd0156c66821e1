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
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/ql"
	"github.com/basicdb/basicdb/store"
)

var sqlOwner string

var sqlCmd = &cobra.Command{
	Use:     "sql [flags] <select-statement>",
	Short:   "Run one SELECT against the configured backend and print the results",
	Example: `  basicdb sql --db memory:// --owner acme "select * from widgets where Color = 'Red'"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		b, err := store.Open(opts)
		if err != nil {
			return err
		}

		stmt, err := ql.Parse(args[0])
		if err != nil {
			return err
		}

		order, results, err := b.Select(sqlOwner, stmt)
		if err != nil {
			return err
		}

		for _, name := range order {
			fmt.Println(name)
			printAttrs(results[name])
		}

		return nil

	},
}

func printAttrs(attrs kv.AttrMap) {

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %s = %s\n", name, strings.Join(attrs[name], ", "))
	}

}

func init() {
	sqlCmd.PersistentFlags().StringVar(&sqlOwner, "owner", "", "Owner whose domain to query.")
}

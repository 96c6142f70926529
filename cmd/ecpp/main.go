// Copyright © 2024 The ECPP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atkin-morain/ecpp/cmd/ecpp/gate"
	"github.com/atkin-morain/ecpp/cmd/ecpp/prove"
	"github.com/atkin-morain/ecpp/cmd/ecpp/verify"
)

var cmd = &cobra.Command{
	Use:   "ecpp",
	Short: `Elliptic curve primality proving`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	cmd.PersistentFlags().Int("verbosity", 0, "diagnostic output level 0..3")

	cmd.AddCommand(prove.Cmd)
	cmd.AddCommand(gate.Cmd)
	cmd.AddCommand(verify.Cmd)
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

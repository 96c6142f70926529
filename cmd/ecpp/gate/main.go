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

package gate

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/atkin-morain/ecpp/primality"
)

var Cmd = &cobra.Command{
	Use:  "gate <N>",
	Args: cobra.ExactArgs(1),
	Long: `Run only the BPSW probable-primality gate on N, without certificates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, ok := new(big.Int).SetString(args[0], 10)
		if !ok || n.Sign() < 0 {
			return fmt.Errorf("not a non-negative decimal integer: %q", args[0])
		}

		result := primality.IsProbablePrime(n)
		fmt.Println(result)
		if result == primality.Composite {
			os.Exit(1)
		}
		return nil
	},
}

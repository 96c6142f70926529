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

package prove

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atkin-morain/ecpp/arith"
	"github.com/atkin-morain/ecpp/ecpp"
	"github.com/atkin-morain/ecpp/logger"
)

var Cmd = &cobra.Command{
	Use:  "prove <N>",
	Args: cobra.ExactArgs(1),
	Long: `Prove primality of N, printing a certificate chain on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, ok := new(big.Int).SetString(args[0], 10)
		if !ok || n.Sign() < 0 {
			return fmt.Errorf("not a non-negative decimal integer: %q", args[0])
		}

		cfg := ecpp.DefaultConfig()
		cfg.Verbosity = viper.GetInt("verbosity")
		cfg.MaxStage = viper.GetInt("max-stage")
		cfg.MaxMemoFactors = viper.GetInt("max-memo")
		if viper.IsSet("seed") {
			cfg.RandSource = arith.NewRandSource(viper.GetInt64("seed"))
		}
		logger.SetVerbosity(cfg.Verbosity)

		result, cert, err := ecpp.Prove(context.Background(), n, cfg)
		if err != nil {
			log.Crit("Proof aborted on internal invariant break", "err", err)
		}

		fmt.Println(result)
		if cert != nil {
			fmt.Println(cert)
		}
		if result == ecpp.Composite {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().Int("max-stage", ecpp.DefaultMaxStage, "factoring-stage ceiling")
	Cmd.Flags().Int("max-memo", ecpp.DefaultMaxMemoFactors, "memoized-factor cache capacity")
	Cmd.Flags().Int64("seed", 0, "deterministic PRNG seed (omit for a random seed)")
}

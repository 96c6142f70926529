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

package verify

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atkin-morain/ecpp/ecpp"
)

var Cmd = &cobra.Command{
	Use:  "verify <N>",
	Args: cobra.ExactArgs(1),
	Long: `Re-check a certificate chain for N, read from --cert or stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, ok := new(big.Int).SetString(args[0], 10)
		if !ok || n.Sign() < 0 {
			return fmt.Errorf("not a non-negative decimal integer: %q", args[0])
		}

		var text []byte
		var err error
		if path := viper.GetString("cert"); path != "" {
			text, err = os.ReadFile(path)
		} else {
			text, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}

		cert, err := ecpp.ParseCertificate(string(text))
		if err != nil {
			return err
		}
		if err := cert.Verify(n); err != nil {
			fmt.Println("rejected:", err)
			os.Exit(1)
		}
		fmt.Println("accepted", "fingerprint", cert.Fingerprint())
		return nil
	},
}

func init() {
	Cmd.Flags().String("cert", "", "certificate file path (default: read stdin)")
}

package cmd

import (
	"io"
	"os"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/common/keypair"
)

var (
	keyCmd *cobra.Command

	flagKeyFormat string = "default"
)

type keyPair struct {
	Seed    string `json:"seed" yaml:"seed"`
	Address string `json:"address" yaml:"address"`
}

func defaultKeyEncode(v interface{}, w io.Writer) error {
	t := template.Must(template.New("").Parse(`Secret Seed: {{ .Seed }}
    Address: {{ .Address }}
`))
	return t.Execute(w, v)
}

func init() {
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Generate a keypair for voters and depositors",
		Run: func(c *cobra.Command, args []string) {
			encode := defaultKeyEncode
			if flagKeyFormat != "default" {
				var found bool
				if encode, found = common.DefaultEncodes[flagKeyFormat]; !found {
					common.PrintFlagsError(c, "--format", errors.Errorf("unknown format, %q", flagKeyFormat))
				}
			}

			kp, err := keypair.RandomCanFail()
			if err != nil {
				common.PrintError(c, err)
			}

			encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout)
		},
	}

	keyCmd.Flags().StringVar(&flagKeyFormat, "format", flagKeyFormat, "output format, {default, json, prettyjson, yaml}")

	rootCmd.AddCommand(keyCmd)
}

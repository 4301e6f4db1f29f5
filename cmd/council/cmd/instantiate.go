package cmd

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/storage"
)

var (
	instantiateCmd *cobra.Command

	flagInstantiateFormat string = "prettyjson"
)

func init() {
	instantiateCmd = &cobra.Command{
		Use:   "instantiate <config yaml>",
		Short: "Store the first governance config",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, found := common.DefaultEncodes[flagInstantiateFormat]
			if !found {
				common.PrintFlagsError(c, "--format", errors.Errorf("unknown format, %q", flagInstantiateFormat))
			}

			msg, err := readConfigFile(args[0])
			if err != nil {
				common.PrintError(c, err)
			}

			config, err := instantiate(flagStorageConfigString, msg)
			if err != nil {
				common.PrintError(c, err)
			}

			encode(config, os.Stdout)
		},
	}

	instantiateCmd.Flags().StringVar(&flagStorageConfigString, "storage", defaultStorageConfigString(), "storage uri")
	instantiateCmd.Flags().StringVar(&flagInstantiateFormat, "format", flagInstantiateFormat, "output format, {json, prettyjson, yaml}")

	rootCmd.AddCommand(instantiateCmd)
}

// readConfigFile reads the governance config from a yaml file. Every field
// must be given.
func readConfigFile(path string) (msg governance.CreateOrUpdateConfig, err error) {
	var b []byte
	if b, err = ioutil.ReadFile(path); err != nil {
		err = errors.Wrapf(err, "failed to read config file, %q", path)
		return
	}

	if err = yaml.UnmarshalStrict(b, &msg); err != nil {
		err = errors.Wrapf(err, "invalid config file, %q", path)
		return
	}

	return
}

func instantiate(storageURI string, msg governance.CreateOrUpdateConfig) (config governance.Config, err error) {
	var storageConfig *storage.Config
	if storageConfig, err = storage.NewConfigFromString(storageURI); err != nil {
		return
	}

	st := &storage.LevelDBBackend{}
	if err = st.Init(storageConfig); err != nil {
		return
	}
	defer st.Close()

	var ts *storage.LevelDBBackend
	if ts, err = st.OpenTransaction(); err != nil {
		return
	}

	if config, err = governance.Instantiate(ts, msg); err != nil {
		ts.Discard()
		return
	}

	err = ts.Commit()

	return
}

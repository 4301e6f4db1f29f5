package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"boscoin.io/council/cmd/council/common"
	councilcommon "boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/node/runner/api"
)

var (
	signCmd *cobra.Command

	flagSignSecretSeed string = councilcommon.GetENVValue("COUNCIL_SECRET_SEED", "")
	flagSignModule     string
)

func parseSecretSeed(seed string) (*keypair.Full, error) {
	if len(seed) < 1 {
		return nil, errors.New("must be given")
	}

	parsed, err := keypair.Parse(seed)
	if err != nil {
		return nil, err
	}

	kp, ok := parsed.(*keypair.Full)
	if !ok {
		return nil, errors.New("not a secret seed")
	}

	return kp, nil
}

func readProposalFile(path string) (msg governance.SubmitProposalMsg, err error) {
	var b []byte
	if b, err = ioutil.ReadFile(path); err != nil {
		err = errors.Wrapf(err, "failed to read proposal file, %q", path)
		return
	}

	if err = json.Unmarshal(b, &msg); err != nil {
		err = errors.Wrapf(err, "invalid proposal file, %q", path)
	}

	return
}

// signSubmission signs, with the governance token `kp`, the submission of
// `proposal` funded by `deposit`.
func signSubmission(kp *keypair.Full, module string, deposit governance.Deposit, proposal governance.SubmitProposalMsg) (req api.SubmitProposalRequest, err error) {
	var data []byte
	if data, err = api.SubmitSigningData(module, deposit, proposal); err != nil {
		return
	}

	var signature string
	if signature, err = api.Sign(kp, data); err != nil {
		return
	}

	return api.SubmitProposalRequest{Deposit: deposit, Proposal: proposal, Signature: signature}, nil
}

func init() {
	signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign the requests of the node API",
	}

	signVoteCmd := &cobra.Command{
		Use:   "vote <proposal id> <for|against>",
		Short: "Sign a vote",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			kp, err := parseSecretSeed(flagSignSecretSeed)
			if err != nil {
				common.PrintFlagsError(c, "--secret-seed", err)
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				common.PrintError(c, errors.Wrap(err, "invalid proposal id"))
			}

			option := governance.VoteOption(args[1])
			if !option.IsValid() {
				common.PrintError(c, errors.Errorf("unknown vote option, %q", args[1]))
			}

			signature, err := api.Sign(kp, api.VoteSigningData(flagSignModule, id, option))
			if err != nil {
				common.PrintError(c, err)
			}
			fmt.Println(signature)
		},
	}

	signSubmitCmd := &cobra.Command{
		Use:   "submit <sender> <amount> <receipt> <proposal json file>",
		Short: "Sign the submission of a received deposit as the governance token",
		Long:  "Sign the submission of a received deposit as the governance token and print the request body of the proposals API",
		Args:  cobra.ExactArgs(4),
		Run: func(c *cobra.Command, args []string) {
			kp, err := parseSecretSeed(flagSignSecretSeed)
			if err != nil {
				common.PrintFlagsError(c, "--secret-seed", err)
			}

			amount, err := councilcommon.AmountFromString(args[1])
			if err != nil {
				common.PrintError(c, err)
			}

			proposal, err := readProposalFile(args[3])
			if err != nil {
				common.PrintError(c, err)
			}

			req, err := signSubmission(kp, flagSignModule, governance.Deposit{
				Token:     kp.Address(),
				Submitter: args[0],
				Amount:    amount,
				Receipt:   args[2],
			}, proposal)
			if err != nil {
				common.PrintError(c, err)
			}

			common.DefaultEncodes["prettyjson"](req, os.Stdout)
		},
	}

	signCmd.PersistentFlags().StringVar(&flagSignSecretSeed, "secret-seed", flagSignSecretSeed, "secret seed of the voter or the governance token")
	signCmd.PersistentFlags().StringVar(&flagSignModule, "module", flagSignModule, "address of the governance module")
	signCmd.MarkPersistentFlagRequired("module")

	signCmd.AddCommand(signVoteCmd, signSubmitCmd)
	rootCmd.AddCommand(signCmd)
}

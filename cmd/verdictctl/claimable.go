package main

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/verdictlabs/verdict-go/settlement"
	"github.com/verdictlabs/verdict-go/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var claimableFlags = struct {
	Snapshot string
}{}

var claimableCommands = []*cli.Command{
	{
		Name:   "claimable",
		Usage:  "recompute per-role claimable rewards from a round snapshot file",
		Action: cliActionClaimable,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "snapshot",
				Usage:       "path to a JSON file holding the resolved round and the caller's participant records",
				Destination: &claimableFlags.Snapshot,
				Required:    true,
			},
		},
	},
}

// roundSnapshot is the offline input format: a resolved round plus the
// caller's own records, as exported by an account reader.
type roundSnapshot struct {
	Round      types.RoundResult
	Defender   *types.DefenderRecord
	Challenger *types.ChallengerRecord
	Juror      *types.JurorRecord
}

func cliActionClaimable(_ *cli.Context) error {
	raw, err := os.ReadFile(claimableFlags.Snapshot)
	if err != nil {
		return err
	}
	var snap roundSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	if err := snap.Round.CheckDistribution(); err != nil {
		return err
	}

	fmt.Printf("round %d resolved %s\n", snap.Round.Round, snap.Round.Outcome)
	if snap.Defender != nil {
		b, err := settlement.DefenderReward(&snap.Round, snap.Defender)
		if err != nil {
			return err
		}
		fmt.Printf("defender: total=%d safeBond=%d winnerPool=%d atRiskRefund=%d claimable=%t\n",
			b.Total, b.SafeBondShare, b.WinnerPoolShare, b.AtRiskRefund,
			settlement.IsDefenderRewardClaimable(snap.Defender))
	}
	if snap.Challenger != nil {
		b, err := settlement.ChallengerReward(&snap.Round, snap.Challenger)
		if err != nil {
			return err
		}
		fmt.Printf("challenger: total=%d winnerPool=%d refund=%d claimable=%t\n",
			b.Total, b.WinnerPoolShare, b.StakeRefund,
			settlement.IsChallengerRewardClaimable(snap.Challenger, snap.Round.Outcome))
	}
	if snap.Juror != nil {
		b, err := settlement.JurorReward(&snap.Round, snap.Juror)
		if err != nil {
			return err
		}
		fmt.Printf("juror: total=%d votingPower=%d of %d claimable=%t\n",
			b.Total, b.VotingPower, b.TotalVoteWeight,
			settlement.IsJurorRewardClaimable(snap.Juror))
	}
	return nil
}

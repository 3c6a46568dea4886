package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/verdictlabs/verdict-go/activity"
	"github.com/verdictlabs/verdict-go/rpc"
	"github.com/verdictlabs/verdict-go/types"
)

var activityFlags = struct {
	RPCEndpoint string
	Owner       string
	Schema      string
	Before      string
	Limit       int
	Timeout     string
}{}

var activityCommands = []*cli.Command{
	{
		Name:   "activity",
		Usage:  "reconstruct and print an owner's dispute activity history from raw transaction logs",
		Action: cliActionActivity,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "rpc-endpoint",
				Usage:       "host:port or URL of the ledger node's JSON-RPC endpoint",
				Destination: &activityFlags.RPCEndpoint,
				Value:       "localhost:8899",
			},
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "base58 address whose activity to reconstruct",
				Destination: &activityFlags.Owner,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "schema",
				Usage:       "protocol schema generation, v1 or v2",
				Destination: &activityFlags.Schema,
				Value:       "v2",
			},
			&cli.StringFlag{
				Name:        "before",
				Usage:       "opaque cursor from a previous run to resume the scan",
				Destination: &activityFlags.Before,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "maximum number of entries to print",
				Destination: &activityFlags.Limit,
				Value:       activity.DefaultHistoryLimit,
			},
			&cli.StringFlag{
				Name:        "http-timeout",
				Usage:       "timeout for http requests made to the rpc endpoint (duration format, ex: 2m31s)",
				Destination: &activityFlags.Timeout,
				Value:       "30s",
			},
		},
	},
}

func cliActionActivity(_ *cli.Context) error {
	f := activityFlags
	owner, err := types.AddressFromString(f.Owner)
	if err != nil {
		return err
	}
	schema, err := types.SchemaFromString(f.Schema)
	if err != nil {
		return err
	}
	timeout, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return err
	}
	client, err := rpc.NewClient(f.RPCEndpoint, rpc.WithTimeout(timeout))
	if err != nil {
		return err
	}
	svc := activity.NewService(client, schema)

	entries, cursor, err := svc.History(context.Background(), owner, activity.HistoryQuery{
		Before: f.Before,
		Limit:  f.Limit,
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		fmt.Printf("%-10d %-18s %-10s %-10s delta=%-12d dispute=%s sig=%s\n",
			e.Slot, e.Type, e.Confidence, status, e.BalanceDelta, e.Dispute, e.Signature)
	}
	if cursor != "" {
		log.Printf("more history available, resume with --before=%s", cursor)
	}
	return nil
}

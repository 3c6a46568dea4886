package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/verdictlabs/verdict-go/runtime/version"
)

func main() {
	app := &cli.App{
		Name:     "verdictctl",
		Usage:    "read-only tooling for the Verdict arbitration ledger",
		Version:  version.GetVersion(),
		Commands: append(activityCommands, claimableCommands...),
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/recordseal/cmd/app/commands"
	"github.com/allisson/recordseal/internal/app"
	"github.com/allisson/recordseal/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-level1-secret",
			Usage: "Generate a new Level-1 secret for the record client",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI used to wrap the secret (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateLevel1Secret(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}

package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/recordseal/cmd/app/commands"
	"github.com/allisson/recordseal/internal/app"
	"github.com/allisson/recordseal/internal/config"
	"github.com/allisson/recordseal/internal/httputil"
	recordUsecase "github.com/allisson/recordseal/internal/record/usecase"
)

// withRecordUseCase builds the client container and runs fn with its record use case.
func withRecordUseCase(
	ctx context.Context,
	fn func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	recordUseCase, err := container.RecordUseCase()
	if err != nil {
		return err
	}
	return fn(recordUseCase, container.Logger())
}

func recordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "record",
		Aliases: []string{"r"},
		Usage:   "Student record as JSON (omit for interactive mode)",
	}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Student ID (UUID)",
	}
}

func getRecordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal",
			Usage: "Encrypt a JSON student record read from stdin into a Level-1 envelope",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunSeal(ctx, recordUseCase, logger, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "open",
			Usage: "Decrypt a Level-1 envelope read from stdin into a JSON student record",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
					return commands.RunOpen(ctx, recordUseCase, logger, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "students",
			Usage: "Manage student records through the record store at API_BASE_URL",
			Commands: []*cli.Command{
				{
					Name:  "add",
					Usage: "Seal and store a new student record",
					Flags: []cli.Flag{recordFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
							return commands.RunAddStudent(
								ctx,
								recordUseCase,
								logger,
								commands.DefaultIO(),
								cmd.String("record"),
							)
						})
					},
				},
				{
					Name:  "list",
					Usage: "Fetch and decrypt a page of student records",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:  "offset",
							Value: 0,
							Usage: "Number of records to skip",
						},
						&cli.IntFlag{
							Name:  "limit",
							Value: httputil.DefaultLimit,
							Usage: "Maximum number of records to return",
						},
						&cli.StringFlag{
							Name:    "format",
							Aliases: []string{"f"},
							Value:   commands.FormatText,
							Usage:   "Output format: 'text' or 'json'",
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
							return commands.RunListStudents(
								ctx,
								recordUseCase,
								logger,
								commands.DefaultIO().Writer,
								int(cmd.Int("offset")),
								int(cmd.Int("limit")),
								cmd.String("format"),
							)
						})
					},
				},
				{
					Name:  "update",
					Usage: "Seal and replace an existing student record",
					Flags: []cli.Flag{idFlag(), recordFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
							return commands.RunUpdateStudent(
								ctx,
								recordUseCase,
								logger,
								commands.DefaultIO(),
								cmd.String("id"),
								cmd.String("record"),
							)
						})
					},
				},
				{
					Name:  "delete",
					Usage: "Delete a student record",
					Flags: []cli.Flag{idFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecordUseCase(ctx, func(recordUseCase recordUsecase.RecordUseCase, logger *slog.Logger) error {
							return commands.RunDeleteStudent(
								ctx,
								recordUseCase,
								logger,
								commands.DefaultIO().Writer,
								cmd.String("id"),
							)
						})
					},
				},
			},
		},
	}
}

package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lsoftware/inventory/cmd/app/commands"
	"github.com/lsoftware/inventory/internal/app"
	"github.com/lsoftware/inventory/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create an active user with the given roles",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "document",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Identity document number",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "First name",
				},
				&cli.StringFlag{
					Name:     "last-name",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Last name",
				},
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name (stored upper-cased)",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to be prompted)",
				},
				&cli.StringFlag{
					Name:     "roles",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Comma-separated role names (e.g. ADMIN,USER)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}
				roleUseCase, err := container.RoleUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					roleUseCase,
					container.Logger(),
					commands.CreateUserParams{
						Document: cmd.String("document"),
						Name:     cmd.String("name"),
						LastName: cmd.String("last-name"),
						Username: cmd.String("username"),
						Password: cmd.String("password"),
						Roles:    cmd.String("roles"),
						Format:   cmd.String("format"),
					},
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "create-role",
			Usage: "Create a role",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Role name without the ROLE_ prefix (stored upper-cased)",
				},
				&cli.StringFlag{
					Name:  "description",
					Usage: "Role description",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				roleUseCase, err := container.RoleUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateRole(
					ctx,
					roleUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("description"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-roles",
			Usage: "List every role",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				roleUseCase, err := container.RoleUseCase()
				if err != nil {
					return err
				}

				return commands.RunListRoles(ctx, roleUseCase, commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}

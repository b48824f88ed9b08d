package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"holocron/internal/config"
	"holocron/internal/database"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the holocron database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Usage: "apply at most N migrations (0 = all)"},
				},
				Action: func(c *cli.Context) error {
					return withMigrator(c.Context, func(m *database.Migrator) error {
						if n := c.Int("steps"); n > 0 {
							return m.Steps(n)
						}
						return m.Up()
					})
				},
			},
			{
				Name:  "down",
				Usage: "revert applied migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "revert N migrations"},
					&cli.BoolFlag{Name: "all", Usage: "revert every migration"},
				},
				Action: func(c *cli.Context) error {
					return withMigrator(c.Context, func(m *database.Migrator) error {
						if c.Bool("all") {
							return m.Down()
						}
						n := c.Int("steps")
						if n < 1 {
							return fmt.Errorf("--steps must be positive")
						}
						return m.Steps(-n)
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					return withMigrator(c.Context, func(m *database.Migrator) error {
						version, dirty, ok, err := m.Version()
						if err != nil {
							return err
						}
						if !ok {
							fmt.Println("no migrations applied")
							return nil
						}
						fmt.Printf("version %06d (dirty=%t)\n", version, dirty)
						return nil
					})
				},
			},
			{
				Name:      "goto",
				Usage:     "migrate up or down to a specific version",
				ArgsUsage: "VERSION",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("goto requires exactly one VERSION argument", 2)
					}
					version, err := strconv.ParseUint(c.Args().First(), 10, 32)
					if err != nil {
						return fmt.Errorf("invalid version %q: %w", c.Args().First(), err)
					}
					return withMigrator(c.Context, func(m *database.Migrator) error {
						return m.Goto(uint(version))
					})
				},
			},
			{
				Name:  "history",
				Usage: "list the embedded migrations for a dialect",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dialect", Usage: "postgres or sqlite (default: from DATABASE_URL)"},
				},
				Action: func(c *cli.Context) error {
					dialect := c.String("dialect")
					if dialect == "" {
						dbCfg, err := config.LoadDatabase()
						if err != nil {
							return err
						}
						dialect = "sqlite"
						if dbCfg.Driver() == config.DriverPostgres {
							dialect = "postgres"
						}
					}
					revisions, err := database.Revisions(dialect)
					if err != nil {
						return err
					}
					for _, rev := range revisions {
						revises := rev.Revises
						if revises == "" {
							revises = "none"
						}
						fmt.Printf("%s <- %s  %s\n", rev.ID, revises, rev.Name)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}

func withMigrator(ctx context.Context, fn func(*database.Migrator) error) error {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	m, err := database.NewMigrator(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close migrator")
		}
	}()

	if err := fn(m); err != nil {
		return err
	}
	log.Info().Str("driver", dbCfg.Driver()).Msg("migration command complete")
	return nil
}

package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/finance-ledger/internal/config"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

var logger = logging.SetupLogging()

func main() {

	app := &cli.App{
		Name:  "db_migrations",
		Usage: "apply or roll back the finance-ledger schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply every pending migration",
				Action: withMigrator(up),
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back, 0 for all"},
				},
				Action: withMigrator(down),
			},
			{
				Name:   "version",
				Usage:  "print the current schema version",
				Action: withMigrator(func(*cli.Context, *migrate.Migrate) error { return nil }),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("db_migrations")
	}
}

func withMigrator(run func(*cli.Context, *migrate.Migrate) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		env, err := server_config.ProcessEnvironmentVariables()
		if err != nil {
			return err
		}

		m, err := storage.NewMigrator(env.PostgresDSN())
		if err != nil {
			return err
		}
		defer m.Close()

		preMigrationVersion, err := version(m)
		if err != nil {
			return err
		}
		if err = run(c, m); err != nil {
			return err
		}
		postMigrationVersion, err := version(m)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"command":              c.Command.Name,
			"preMigrationVersion":  preMigrationVersion,
			"postMigrationVersion": postMigrationVersion,
		}).Info("Migration status")
		return nil
	}
}

func up(_ *cli.Context, m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func down(c *cli.Context, m *migrate.Migrate) error {
	var err error
	if steps := c.Int("steps"); steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func version(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, errors.New("schema is dirty; fix it and force the version")
	}
	return v, nil
}

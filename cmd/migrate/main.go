package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"medical-appointments-api/config"
	"medical-appointments-api/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
)

const usage = `usage: migrate [-steps N] <up|down|version>

  up       apply pending migrations (or N steps)
  down     roll back one migration (or N steps)
  version  print the current schema version`

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply or roll back")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	m, err := database.NewMigrator(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to create migrator: %v", err)
	}
	defer m.Close()

	if err := run(m, flag.Arg(0), *steps); err != nil {
		logrus.Fatalf("Migration %s failed: %v", flag.Arg(0), err)
	}
}

func run(m *migrate.Migrate, command string, steps int) error {
	switch command {
	case "up":
		if steps > 0 {
			return ignoreNoChange(m.Steps(steps))
		}
		return ignoreNoChange(m.Up())
	case "down":
		if steps <= 0 {
			steps = 1
		}
		return ignoreNoChange(m.Steps(-steps))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logrus.Info("No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Current schema version")
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logrus.Info("No change")
		return nil
	}
	if err == nil {
		logrus.Info("Done")
	}
	return err
}

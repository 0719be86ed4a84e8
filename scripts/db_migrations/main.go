package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/config"
	"github.com/carson-networks/budget-desk/internal/storage"
)

func main() {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	if err := os.MkdirAll(filepath.Dir(env.DBPath), 0o755); err != nil {
		logrus.WithError(err).Fatal("os.MkdirAll")
		return
	}

	preMigrationVersion, postMigrationVersion, err := storage.RunMigrations(env.DBPath)
	if err != nil {
		logrus.WithError(err).Fatal("storage.RunMigrations")
		return
	}

	logrus.WithFields(logrus.Fields{
		"dbPath":               env.DBPath,
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "budget-desk",
		Usage: "personal finance records with derived balances, budgets and runway",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			importCommand(),
			exportCommand(),
			backupCommand(),
			restoreCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logrus.WithError(err).Fatal("budget-desk")
	}
}

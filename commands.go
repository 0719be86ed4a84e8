package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/budget-desk/api"
	"github.com/carson-networks/budget-desk/internal/backup"
	"github.com/carson-networks/budget-desk/internal/config"
	"github.com/carson-networks/budget-desk/internal/importer"
	"github.com/carson-networks/budget-desk/internal/logging"
	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/operator"
	"github.com/carson-networks/budget-desk/internal/service"
	"github.com/carson-networks/budget-desk/internal/storage"
)

const previewCacheSize = 64

// deps is everything a command needs to read and write the store.
type deps struct {
	cfg      *config.Config
	logger   *logrus.Logger
	store    *storage.Storage
	hub      *notify.Hub
	amqp     *notify.AMQPPublisher
	operator *operator.OperatorDelegator
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.SetupLogging(logging.ParseLevel(cfg.LogLevel)), nil
}

func openRuntime() (*deps, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	rt := &deps{cfg: cfg, logger: logger, store: store, hub: notify.NewHub()}
	if cfg.AMQPURL != "" {
		rt.amqp, err = notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		rt.hub.Subscribe(rt.amqp.Publish)
	}

	rt.operator = operator.NewOperatorDelegator(store, cfg.OperatorQueue, rt.hub)
	rt.operator.Start()
	return rt, nil
}

func (rt *deps) close() {
	rt.operator.Stop()
	if rt.amqp != nil {
		if err := rt.amqp.Close(); err != nil {
			rt.logger.WithError(err).Warn("runtime.close.amqp")
		}
	}
	if err := rt.store.Close(); err != nil {
		rt.logger.WithError(err).Warn("runtime.close.storage")
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.close()
			rt.logger.Info("budget-desk starting")

			previews := importer.NewPreviewCache(previewCacheSize, rt.cfg.PreviewTTL)
			go previews.RunJanitor(c.Context, rt.cfg.PreviewTTL)

			rest := api.Rest{
				Logger:    rt.logger,
				Port:      rt.cfg.HTTPPort,
				Storage:   rt.store,
				Service:   service.NewService(rt.store, rt.operator),
				Importer:  importer.New(rt.store, rt.operator, previews),
				Archive:   backup.NewService(rt.store, rt.operator),
				Hub:       rt.hub,
				MaxUpload: rt.cfg.MaxUpload,
			}
			return rest.Serve(c.Context)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending schema migrations",
		Action: func(c *cli.Context) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return err
			}
			pre, post, err := storage.RunMigrations(cfg.DBPath)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"preMigrationVersion":  pre,
				"postMigrationVersion": post,
			}).Info("Migration status")
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "preview, and optionally apply, a CSV, XLSX or DOCX file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Required: true, Usage: "collection to import into"},
			&cli.StringFlag{Name: "file", Required: true, Usage: "file to import"},
			&cli.BoolFlag{Name: "apply", Usage: "write the rows when the preview has no errors"},
			&cli.BoolFlag{Name: "dump", Usage: "print the full preview"},
		},
		Action: func(c *cli.Context) error {
			kind, err := importer.ParseKind(c.String("kind"))
			if err != nil {
				return err
			}
			path := c.String("file")
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			im := importer.New(rt.store, rt.operator, nil)
			preview, err := im.Preview(c.Context, kind, filepath.Base(path), data)
			if err != nil {
				return err
			}
			if c.Bool("dump") {
				importer.Dump(c.App.Writer, preview)
			}
			for _, row := range preview.Rows {
				for _, msg := range row.Errors {
					fmt.Fprintf(c.App.ErrWriter, "line %d: %s\n", row.Line, msg)
				}
			}
			fmt.Fprintf(c.App.Writer, "add %d, update %d, error %d\n",
				preview.Counts.Add, preview.Counts.Update, preview.Counts.Error)

			if !c.Bool("apply") {
				return nil
			}
			result, err := im.Apply(c.Context, preview)
			if err != nil {
				return err
			}
			for _, f := range result.Failures {
				fmt.Fprintf(c.App.ErrWriter, "line %d: %s\n", f.Line, f.Message)
			}
			fmt.Fprintf(c.App.Writer, "added %d, updated %d, failed %d\n", result.Added, result.Updated, result.Failed)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write collections as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "collection to export; all when empty"},
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output file for one kind, directory for all"},
		},
		Action: func(c *cli.Context) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if c.String("kind") == "" {
				paths, err := backup.ExportAll(c.Context, rt.store, c.String("out"))
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(c.App.Writer, p)
				}
				return nil
			}

			kind, err := importer.ParseKind(c.String("kind"))
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := backup.ExportCSV(c.Context, rt.store, kind, &buf); err != nil {
				return err
			}
			out := c.String("out")
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				out = filepath.Join(out, string(kind)+".csv")
			}
			return os.WriteFile(out, buf.Bytes(), 0o644)
		},
	}
}

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "write a backup archive",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "backup.zip"},
		},
		Action: func(c *cli.Context) error {
			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			var buf bytes.Buffer
			if err := backup.NewService(rt.store, rt.operator).Backup(c.Context, &buf); err != nil {
				return err
			}
			return os.WriteFile(c.String("out"), buf.Bytes(), 0o600)
		},
	}
}

func restoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "restore a backup archive",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true},
			&cli.BoolFlag{Name: "full", Usage: "replace every collection instead of upserting"},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("in"))
			if err != nil {
				return err
			}

			rt, err := openRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			counts, err := backup.NewService(rt.store, rt.operator).Restore(c.Context, data, c.Bool("full"))
			if err != nil {
				return err
			}
			for _, kind := range notify.AllKinds {
				fmt.Fprintf(c.App.Writer, "%-12s inserted %d, updated %d\n", kind, counts.Inserted[kind], counts.Updated[kind])
			}
			return nil
		},
	}
}

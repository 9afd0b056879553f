package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/focuskeeper/focuskeeper/internal/daemon"
	"github.com/focuskeeper/focuskeeper/internal/monitor"
	"github.com/focuskeeper/focuskeeper/internal/snapshot"
	"github.com/focuskeeper/focuskeeper/internal/web"
	"github.com/focuskeeper/focuskeeper/pkg/detector"
	"github.com/focuskeeper/focuskeeper/pkg/integrations/process"
)

const shutdownTimeout = 10 * time.Second

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Monitor the focused window in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, opts)
		},
	}
}

func runMonitor(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		return errors.Wrap(err, "failed to check monitor status")
	}
	if running {
		return errors.Errorf("monitor is already running (PID: %d)", pid)
	}

	backend, err := detector.New()
	if err != nil {
		return errors.Wrap(err, "failed to initialize window backend")
	}
	defer backend.Close()
	log.Info().Str("display_server", backend.GetDisplayServer()).Msg("Window backend initialized")

	monOpts := []monitor.Option{
		monitor.WithPrinter(monitor.NewPrinter(cmd.OutOrStdout())),
		monitor.WithLogger(log),
		monitor.WithProcessLookup(process.NewLookup()),
	}

	var store web.EventStore
	if cfg.Database.Enabled {
		db, repo, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Database.RetentionDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -cfg.Database.RetentionDays)
			if n, err := repo.DeleteOldEvents(cutoff); err != nil {
				log.Warn().Err(err).Msg("Failed to prune old events")
			} else if n > 0 {
				log.Info().Int64("deleted", n).Msg("Pruned old events")
			}
		}

		monOpts = append(monOpts, monitor.WithRecorder(repo))
		store = repo
	}

	cache := snapshot.New(backend, cfg.Monitor.CacheValidity)
	svc := monitor.NewService(cfg, backend, cache, monOpts...)

	if err := dm.WritePID(); err != nil {
		return err
	}
	defer dm.RemovePID()

	log.Debug().Msg(cfg.String())

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		err := svc.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Web.Enabled {
		srv := web.NewServer(cfg, store, svc, log)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Monitor stopped successfully")
	return nil
}

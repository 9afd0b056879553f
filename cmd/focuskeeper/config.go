package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/focuskeeper/focuskeeper/internal/config"
	"github.com/focuskeeper/focuskeeper/internal/database"
	"github.com/focuskeeper/focuskeeper/internal/logging"
)

// loadConfig resolves defaults, file, environment and flags, in that
// order, and validates the result.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Keywords.Targets = opts.targets
	}
	if flags.Changed("ignore") {
		cfg.Keywords.Ignored = opts.ignored
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if opts.noDB {
		cfg.Database.Enabled = false
	}
	if opts.serve {
		cfg.Web.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "invalid log configuration")
	}
	return log, nil
}

func openDatabase(cfg *config.Config) (*database.DB, *database.Repository, error) {
	if !cfg.Database.Enabled {
		return nil, nil, errors.New("history is disabled (database.enabled is false)")
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, database.NewRepository(db), nil
}

package main

import (
	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var seed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if seed {
			if err := database.SeedDefaultData(cmd.Context(), db, &cfg.Store, log); err != nil {
				return err
			}
		}
		log.Info("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", true, "create the store profile from STORE_* settings when missing")
}

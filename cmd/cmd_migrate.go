package main

import (
	"context"
	"time"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/repository/sqlrepo"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
)

// newMigrateCmd creates the migrate subcommand
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the devices and readings tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := sqlrepo.Migrate(ctx, db); err != nil {
				return err
			}

			nuts.L.Infof("[Migrate] Schema ready (%s)", cfg.Database.Driver)
			return nil
		},
	}
}

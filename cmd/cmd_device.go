package main

import (
	"fmt"

	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/repository/sqlrepo"
	"github.com/itsatony/airsense/internal/service"
	"github.com/spf13/cobra"
)

// newDeviceCmd creates the device subcommand
func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage devices",
	}
	cmd.AddCommand(newDeviceAddCmd())
	return cmd
}

func newDeviceAddCmd() *cobra.Command {
	var (
		userID string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a device and print its id",
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

			svc := service.New(sqlrepo.NewReadingRepository(db), sqlrepo.NewDeviceRepository(db))
			device, err := svc.RegisterDevice(cmd.Context(), userID, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), device.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.MarkFlagRequired("user")
	return cmd
}

// FilePath: cmd/main.go
package main

import (
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	"github.com/itsatony/airsense/internal/config"
	"github.com/itsatony/airsense/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	nuts "github.com/vaudience/go-nuts"
)

var (
	// Flags
	configPath string
	port       int
	noBanner   bool
)

func main() {
	// Initialize version info
	nuts.InitVersion()

	rootCmd := &cobra.Command{
		Use:   "airsense",
		Short: "airsense telemetry hub",
		Long: `airsense ingests environmental readings from sensor devices and serves
hourly rollups and per-device summaries.

  airsense serve                     Run the HTTP API
  airsense migrate                   Create the database schema
  airsense token --user <id> ...     Issue a development token
  airsense device add --user <id>    Register a device`,
		Version:       nuts.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ./config/config.yaml)")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newTokenCmd(),
		newDeviceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		nuts.L.Errorf("[Main] %v", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noBanner {
				ClearConsole()
				DrawLogo()
			}
			nuts.L.Infof("[Main] Starting airsense hub v%s", nuts.GetVersion())

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Create and start server
			return server.New(cfg).Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", 7325, "HTTP listen port")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "skip the console banner")
	return cmd
}

func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// ClearConsole clears the console screen.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"        _                                 ",
		"  __ _ (_)_ __ ___  ___ _ __  ___  ___    ",
		" / _` || | '__/ __|/ _ \\ '_ \\/ __|/ _ \\   ",
		"| (_| || | |  \\__ \\  __/ | | \\__ \\  __/   ",
		" \\__,_||_|_|  |___/\\___|_| |_|___/\\___|   ",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/config"
	"github.com/spf13/cobra"
)

// newTokenCmd creates the token subcommand. It signs tokens with the configured secret so
// devices can be provisioned during development.
func newTokenCmd() *cobra.Command {
	var (
		userID   string
		deviceID string
		rights   []string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed development token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.Mode != config.AuthModeJWT {
				return fmt.Errorf("tokens can only be issued in %q auth mode", config.AuthModeJWT)
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}

			claims := auth.Claims{UserID: userID, DeviceID: deviceID}
			for _, r := range rights {
				claims.Rights = append(claims.Rights, auth.Right(r))
			}

			signed, err := auth.NewJWTVerifier(cfg.Auth.Secret).Sign(claims, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&deviceID, "device", "", "device id for device tokens")
	cmd.Flags().StringSliceVar(&rights, "rights", []string{string(auth.RightReadDevice)}, "granted rights")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.token_ttl)")
	cmd.MarkFlagRequired("user")
	return cmd
}

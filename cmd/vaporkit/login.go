// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vaporkit/vaporkit/auth"
	"github.com/vaporkit/vaporkit/internal/logging"
	"github.com/vaporkit/vaporkit/webapi"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an account name and password",
		Long: `Log in with an account name and password, satisfying any Steam Guard
confirmation interactively, and print the resulting tokens.`,
		RunE: runLogin,
	}

	cmd.Flags().StringP("user", "u", "", "account name")
	cmd.Flags().Bool("persistent", false, "request a persistent session")
	cmd.Flags().String("device-name", "", "device name shown in account security pages")
	cmd.Flags().String("guard-data-file", "", "file to store guard data for future logins")

	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	username, _ := cmd.Flags().GetString("user")
	password := os.Getenv("VAPORKIT_PASSWORD")
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	service, err := auth.NewAuthentication(
		webapi.NewClient(webapi.WithBaseURL(cfg.APIURL)),
		auth.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	session, err := service.BeginAuthSessionViaCredentials(ctx, auth.SessionDetails{
		Username:           username,
		Password:           password,
		PersistentSession:  cfg.Persistent,
		WebsiteID:          cfg.WebsiteID,
		DeviceFriendlyName: cfg.DeviceName,
		GuardData:          loadGuardData(cfg.GuardDataFile),
		Authenticator:      newTerminalAuthenticator(cmd.InOrStdin(), cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	result, err := session.WaitForResult(ctx)
	if err != nil {
		return err
	}

	if result.NewGuardData != "" && cfg.GuardDataFile != "" {
		if err := os.WriteFile(cfg.GuardDataFile, []byte(result.NewGuardData), 0o600); err != nil {
			logger.Warn("could not persist guard data", "path", cfg.GuardDataFile, "error", err)
		}
	}

	printTokens(cmd, result)
	return nil
}

// setupLogging configures the process-wide logger from the merged config
// and returns it.
func setupLogging(cfg *Config) (*slog.Logger, error) {
	level, err := cfg.slogLevel()
	if err != nil {
		return nil, err
	}
	logger := logging.Setup("vaporkit", version, cfg.LogFormat, level, os.Stderr)
	slog.SetDefault(logger)
	return logger, nil
}

// loadGuardData reads previously stored guard data, if any. A missing file
// just means this device has not completed a guarded login before.
func loadGuardData(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func printTokens(cmd *cobra.Command, result *auth.PollResult) {
	cmd.Printf("account:       %s\n", result.AccountName)
	cmd.Printf("refresh token: %s\n", result.RefreshToken)
	if result.AccessToken != "" {
		cmd.Printf("access token:  %s\n", result.AccessToken)
	}

	if details, err := auth.ParseTokenDetails(result.RefreshToken); err == nil {
		cmd.Printf("steam id:      %s\n", details.SteamID)
		if !details.Expiry.IsZero() {
			cmd.Printf("expires:       %s\n", details.Expiry.Format("2006-01-02 15:04:05 MST"))
		}
	}
}

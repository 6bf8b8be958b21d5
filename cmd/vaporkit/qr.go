// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vaporkit/vaporkit/auth"
	"github.com/vaporkit/vaporkit/webapi"
)

// NewQRCmd creates the qr subcommand.
func NewQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Log in by scanning a QR challenge with the mobile app",
		Long: `Start a QR login session and print the challenge URL. Scan it with the
Steam mobile app and approve the login; the command waits until the
session completes and prints the resulting tokens.`,
		RunE: runQR,
	}

	cmd.Flags().String("device-name", "", "device name shown in account security pages")
	cmd.Flags().String("website-id", "", "consumer of the issued tokens")

	return cmd
}

func runQR(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
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

	session, err := service.BeginAuthSessionViaQR(ctx, auth.SessionDetails{
		WebsiteID:          cfg.WebsiteID,
		DeviceFriendlyName: cfg.DeviceName,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Scan this URL with the Steam mobile app:\n\n  %s\n\n", session.ChallengeURL())

	// The service rotates the challenge while we wait; reprint so a stale
	// QR code is never the only one on screen.
	session.OnChallengeURLChanged = func(url string) {
		cmd.Printf("Challenge refreshed:\n\n  %s\n\n", url)
	}

	result, err := session.WaitForResult(ctx)
	if err != nil {
		return err
	}

	printTokens(cmd, result)
	return nil
}

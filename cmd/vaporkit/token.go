// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vaporkit/vaporkit/auth"
	"github.com/vaporkit/vaporkit/webapi"
)

// NewTokenCmd creates the token subcommand group.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and renew issued tokens",
	}

	cmd.AddCommand(newTokenInspectCmd())
	cmd.AddCommand(newTokenRenewCmd())

	return cmd
}

func newTokenInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a refresh or access token and print its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := auth.ParseTokenDetails(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("steam id: %s\n", details.SteamID)
			cmd.Printf("issuer:   %s\n", details.Issuer)
			cmd.Printf("audience: %v\n", details.Audience)
			if !details.IssuedAt.IsZero() {
				cmd.Printf("issued:   %s\n", details.IssuedAt.Format(time.RFC3339))
			}
			if !details.Expiry.IsZero() {
				cmd.Printf("expires:  %s\n", details.Expiry.Format(time.RFC3339))
				if details.Expired(time.Now()) {
					cmd.Println("status:   EXPIRED")
				}
			}
			return nil
		},
	}
}

func newTokenRenewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew <refresh-token>",
		Short: "Exchange a refresh token for a fresh access token",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenRenew,
	}

	cmd.Flags().Bool("allow-renewal", false, "let the service rotate the refresh token too")

	return cmd
}

func runTokenRenew(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	refreshToken := args[0]

	// The subject of the refresh token names the account it belongs to.
	details, err := auth.ParseTokenDetails(refreshToken)
	if err != nil {
		return err
	}

	allowRenewal, _ := cmd.Flags().GetBool("allow-renewal")

	service, err := auth.NewAuthentication(
		webapi.NewClient(webapi.WithBaseURL(cfg.APIURL)),
		auth.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := service.GenerateAccessTokenForApp(cmd.Context(), details.SteamID, refreshToken, allowRenewal)
	if err != nil {
		return err
	}

	cmd.Printf("access token:  %s\n", result.AccessToken)
	if result.RefreshToken != "" {
		cmd.Printf("refresh token: %s\n", result.RefreshToken)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the vaporkit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vaporkit",
		Short:         "VaporKit - Steam authentication toolkit",
		Long:          `VaporKit logs in to Steam with credentials or a QR challenge and manages the resulting refresh and access tokens.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("config", "", "config file path")
	cmd.PersistentFlags().String("api-url", "", "web API base URL")
	cmd.PersistentFlags().String("log-format", "", "log format (json or text)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewQRCmd())
	cmd.AddCommand(NewTokenCmd())

	return cmd
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import "github.com/vaporkit/vaporkit/rpc"

// PollResult is the terminal outcome of a completed authentication
// session.
type PollResult struct {
	// AccountName is the account that logged in.
	AccountName string

	// RefreshToken is the long-lived credential; always non-empty in a
	// terminal result.
	RefreshToken string

	// AccessToken is a short-lived token the service may include.
	AccessToken string

	// NewGuardData, when present, should be persisted and supplied on the
	// next login from this device to skip guard checks.
	NewGuardData string
}

func newPollResult(resp *rpc.PollAuthSessionStatusResponse) *PollResult {
	return &PollResult{
		AccountName:  resp.AccountName,
		RefreshToken: resp.RefreshToken,
		AccessToken:  resp.AccessToken,
		NewGuardData: resp.NewGuardData,
	}
}

// AccessTokenGenerateResult carries a freshly minted access token for a
// refresh token.
type AccessTokenGenerateResult struct {
	AccessToken string

	// RefreshToken is non-empty only when renewal was allowed and the
	// service rotated the refresh token.
	RefreshToken string
}

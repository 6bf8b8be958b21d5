// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

// CredentialsSession is an authentication session begun with an account
// name and password. It is the only session kind that can submit guard
// codes.
type CredentialsSession struct {
	Session

	steamID steam.SteamID
}

func newCredentialsSession(
	client rpc.Client,
	authenticator Authenticator,
	resp *rpc.BeginAuthSessionViaCredentialsResponse,
	logger *slog.Logger,
	metrics *Metrics,
) *CredentialsSession {
	s := &CredentialsSession{
		Session: newSession(
			client,
			authenticator,
			resp.ClientID,
			resp.RequestID,
			resp.AllowedConfirmations,
			resp.Interval,
			logger,
			metrics,
		),
		steamID: steam.SteamID(resp.SteamID),
	}
	s.codeSender = s
	return s
}

// SteamID returns the account the session is authenticating.
func (s *CredentialsSession) SteamID() steam.SteamID {
	return s.steamID
}

// SendGuardCode submits a guard code to the service. Submitting a code
// only satisfies the guard step; completion still requires a poll that
// returns the refresh token.
//
// A DuplicateRequest result means the guard was already satisfied and is
// treated as success.
func (s *CredentialsSession) SendGuardCode(ctx context.Context, code string, codeType steam.GuardType) error {
	req := &rpc.UpdateAuthSessionWithSteamGuardCodeRequest{
		ClientID: s.clientID,
		SteamID:  s.steamID.Uint64(),
		Code:     code,
		CodeType: codeType,
	}

	resp, err := s.client.UpdateAuthSessionWithSteamGuardCode(ctx, req)
	if err != nil {
		s.metrics.recordGuardCode(codeType, "error")
		return oops.Code("AUTH_GUARD_CODE_FAILED").
			With("operation", "update auth session with steam guard code").
			Wrap(err)
	}

	switch resp.Result {
	case steam.EResultOK, steam.EResultDuplicateRequest:
		s.metrics.recordGuardCode(codeType, "accepted")
		return nil
	default:
		s.metrics.recordGuardCode(codeType, "rejected")
		return remoteError("AUTH_GUARD_CODE_FAILED", resp.Result,
			"guard code was rejected: %s", resp.Result)
	}
}

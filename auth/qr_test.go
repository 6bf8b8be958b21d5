// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaporkit/vaporkit/auth"
	"github.com/vaporkit/vaporkit/auth/authtest"
	"github.com/vaporkit/vaporkit/pkg/errutil"
	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

func qrBeginResponse(confirmations ...steam.AllowedConfirmation) *rpc.BeginAuthSessionViaQRResponse {
	return &rpc.BeginAuthSessionViaQRResponse{
		Result:               steam.EResultOK,
		ClientID:             202,
		RequestID:            []byte{0x01, 0x02},
		ChallengeURL:         "https://s.team/q/1/abc",
		Interval:             0.01,
		AllowedConfirmations: confirmations,
		Version:              1,
	}
}

func beginQRSession(t *testing.T, client rpc.Client) *auth.QRSession {
	t.Helper()

	service, err := auth.NewAuthentication(client)
	require.NoError(t, err)

	session, err := service.BeginAuthSessionViaQR(context.Background(), auth.SessionDetails{})
	require.NoError(t, err)
	return session
}

func TestQRSession_ChallengeRotation(t *testing.T) {
	t.Parallel()

	client := &authtest.Client{
		BeginQR: qrBeginResponse(steam.AllowedConfirmation{Type: steam.GuardTypeDeviceConfirmation}),
		Polls: []*rpc.PollAuthSessionStatusResponse{
			{Result: steam.EResultOK, NewChallengeURL: "https://s.team/q/1/def"},
			{Result: steam.EResultOK, NewChallengeURL: "https://s.team/q/1/def"},
		},
	}
	session := beginQRSession(t, client)

	assert.Equal(t, "https://s.team/q/1/abc", session.ChallengeURL())
	assert.Equal(t, int32(1), session.Version())

	var rotations []string
	session.OnChallengeURLChanged = func(url string) {
		rotations = append(rotations, url)
	}

	result, err := session.Poll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "https://s.team/q/1/def", session.ChallengeURL())

	// An unchanged URL on a later poll does not fire the callback again.
	_, err = session.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://s.team/q/1/def"}, rotations)
}

func TestQRSession_WaitForResult(t *testing.T) {
	t.Parallel()

	client := &authtest.Client{
		BeginQR: qrBeginResponse(steam.AllowedConfirmation{Type: steam.GuardTypeDeviceConfirmation}),
		Polls: []*rpc.PollAuthSessionStatusResponse{
			{Result: steam.EResultOK, NewChallengeURL: "https://s.team/q/1/def"},
			terminalPoll(),
		},
	}
	session := beginQRSession(t, client)

	// Without an authenticator the session polls for the scan directly.
	result, err := session.WaitForResult(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-jwt", result.RefreshToken)
	assert.Equal(t, "https://s.team/q/1/def", session.ChallengeURL())
	assert.Equal(t, 2, client.PollCount())
}

func TestQRSession_CannotSubmitGuardCodes(t *testing.T) {
	t.Parallel()

	client := &authtest.Client{
		BeginQR: qrBeginResponse(steam.AllowedConfirmation{Type: steam.GuardTypeEmailCode}),
	}
	session := beginQRSession(t, client)

	_, err := session.WaitForResult(context.Background())
	errutil.AssertErrorCode(t, err, "AUTH_WRONG_SESSION_TYPE")
	assert.Empty(t, client.GuardCodeCalls)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"log/slog"

	"github.com/vaporkit/vaporkit/rpc"
)

// QRSession is an authentication session begun as a QR challenge: the
// session presents a challenge URL for another device to scan and approve.
// The service rotates the challenge periodically, so the URL may change on
// every poll.
type QRSession struct {
	Session

	challengeURL string
	version      int32

	// OnChallengeURLChanged, when set before polling starts, is invoked
	// from the polling goroutine each time the service rotates the
	// challenge, e.g. to re-render a QR code.
	OnChallengeURLChanged func(url string)
}

func newQRSession(
	client rpc.Client,
	authenticator Authenticator,
	resp *rpc.BeginAuthSessionViaQRResponse,
	logger *slog.Logger,
	metrics *Metrics,
) *QRSession {
	s := &QRSession{
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
		challengeURL: resp.ChallengeURL,
		version:      resp.Version,
	}
	s.hook = s
	return s
}

// ChallengeURL returns the current challenge URL to present for scanning.
func (s *QRSession) ChallengeURL() string {
	return s.challengeURL
}

// Version returns the challenge version reported by the service.
func (s *QRSession) Version() int32 {
	return s.version
}

func (s *QRSession) handlePollResponse(resp *rpc.PollAuthSessionStatusResponse) {
	if resp.NewChallengeURL == "" || resp.NewChallengeURL == s.challengeURL {
		return
	}

	s.challengeURL = resp.NewChallengeURL
	s.logger.Debug("qr challenge rotated")
	if s.OnChallengeURLChanged != nil {
		s.OnChallengeURLChanged(s.challengeURL)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

// pollHook lets a session variant capture extra state from each poll
// response. Adoption of a rotated client id is handled by the session
// itself before the hook runs; a hook cannot skip it.
type pollHook interface {
	handlePollResponse(resp *rpc.PollAuthSessionStatusResponse)
}

// guardCodeSender is the capability of submitting a guard code to the
// service. Only the credentials variant installs one; its absence marks a
// session on which code confirmation is meaningless.
type guardCodeSender interface {
	SendGuardCode(ctx context.Context, code string, codeType steam.GuardType) error
}

// errPollPending marks a poll that completed without yielding tokens yet.
var errPollPending = errors.New("authentication pending")

// Session holds the state of an in-progress authentication session and
// drives the confirm-then-poll protocol. Sessions are created only by the
// begin operations on Authentication.
//
// A Session is not safe for concurrent use: polls for one session must be
// strictly sequential, and WaitForResult owns the session until it
// returns. Distinct sessions are fully independent.
type Session struct {
	client        rpc.Client
	authenticator Authenticator

	clientID             uint64
	requestID            []byte
	allowedConfirmations []steam.AllowedConfirmation
	pollingInterval      time.Duration

	hook       pollHook
	codeSender guardCodeSender

	sid     ulid.ULID
	logger  *slog.Logger
	metrics *Metrics
}

func newSession(
	client rpc.Client,
	authenticator Authenticator,
	clientID uint64,
	requestID []byte,
	confirmations []steam.AllowedConfirmation,
	intervalSeconds float32,
	logger *slog.Logger,
	metrics *Metrics,
) Session {
	sid := ulid.Make()
	if logger == nil {
		logger = slog.Default()
	}
	return Session{
		client:               client,
		authenticator:        authenticator,
		clientID:             clientID,
		requestID:            slices.Clone(requestID),
		allowedConfirmations: SortConfirmations(confirmations),
		pollingInterval:      intervalToDuration(intervalSeconds),
		sid:                  sid,
		logger:               logger.With("sid", sid.String()),
		metrics:              metrics,
	}
}

// intervalToDuration converts the service-dictated polling interval to a
// Duration, defaulting to one second when the service omits it.
func intervalToDuration(seconds float32) time.Duration {
	if seconds <= 0 {
		return time.Second
	}
	return time.Duration(float64(seconds) * float64(time.Second))
}

// ClientID returns the current session client id. The service may rotate
// it between polls.
func (s *Session) ClientID() uint64 {
	return s.clientID
}

// RequestID returns a copy of the request id presented on every poll.
func (s *Session) RequestID() []byte {
	return slices.Clone(s.requestID)
}

// AllowedConfirmations returns a copy of the confirmation methods the
// service accepts for this session, most preferred first.
func (s *Session) AllowedConfirmations() []steam.AllowedConfirmation {
	return slices.Clone(s.allowedConfirmations)
}

// PollingInterval returns the service-dictated minimum spacing between
// polls.
func (s *Session) PollingInterval() time.Duration {
	return s.pollingInterval
}

// WaitForResult handles any required guard confirmation and polls until
// the session yields tokens. It blocks until completion, a fatal error, or
// ctx cancellation.
func (s *Session) WaitForResult(ctx context.Context) (*PollResult, error) {
	if len(s.allowedConfirmations) == 0 {
		return nil, oops.Code("AUTH_NO_CONFIRMATIONS").
			Errorf("there are no allowed confirmations")
	}

	preferred := s.allowedConfirmations[0]
	if preferred.Type == steam.GuardTypeUnknown {
		return nil, oops.Code("AUTH_NO_CONFIRMATIONS").
			Errorf("there are no allowed confirmations")
	}

	// When device confirmation is available, the authenticator chooses
	// between polling for the out-of-band approval and falling back to
	// the next confirmation method.
	if s.authenticator != nil && preferred.Type == steam.GuardTypeDeviceConfirmation {
		wait, err := s.authenticator.AcceptDeviceConfirmation(ctx)
		if err != nil {
			return nil, err
		}
		if !wait {
			if len(s.allowedConfirmations) < 2 {
				return nil, oops.Code("AUTH_NO_FALLBACK").
					Errorf("device confirmation was declined but no other confirmation method is available")
			}
			preferred = s.allowedConfirmations[1]
		}
	}

	pollLoop := false
	switch preferred.Type {
	case steam.GuardTypeNone:
		// No guard step; the session is expected to complete on the
		// first poll.
	case steam.GuardTypeEmailCode, steam.GuardTypeDeviceCode:
		if err := s.handleCodeAuth(ctx, preferred); err != nil {
			return nil, err
		}
	case steam.GuardTypeDeviceConfirmation:
		pollLoop = true
	default:
		return nil, oops.Code("AUTH_UNSUPPORTED_CONFIRMATION").
			With("confirmation_type", preferred.Type.String()).
			Errorf("unsupported confirmation type %s", preferred.Type)
	}

	if pollLoop {
		return s.pollDeviceConfirmation(ctx)
	}

	result, err := s.Poll(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, remoteError("AUTH_FAILED", steam.EResultFail,
			"authentication did not complete")
	}
	return result, nil
}

// WaitForResultAsync runs WaitForResult in its own goroutine and returns a
// Handle the caller can await or cancel. A failure inside the handle is
// confined to it; other sessions and the caller are unaffected.
func (s *Session) WaitForResultAsync(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.err = oops.Code("AUTH_FAILED").
					With("panic", r).
					Errorf("authentication aborted by panic")
			}
			cancel()
			close(h.done)
		}()
		h.result, h.err = s.WaitForResult(ctx)
	}()

	return h
}

// handleCodeAuth runs the code-entry loop for email and device codes. The
// only recovered condition is the guard-specific "wrong code" result, on
// which the authenticator is asked again with previousWasIncorrect set.
func (s *Session) handleCodeAuth(ctx context.Context, preferred steam.AllowedConfirmation) error {
	if s.codeSender == nil {
		return oops.Code("AUTH_WRONG_SESSION_TYPE").
			With("confirmation_type", preferred.Type.String()).
			Errorf("got %s confirmation type in a session that cannot submit guard codes", preferred.Type)
	}
	if s.authenticator == nil {
		return oops.Code("AUTH_AUTHENTICATOR_REQUIRED").
			Errorf("this account requires an authenticator for login, but none was provided")
	}

	var expectedInvalidCodeResult steam.EResult
	switch preferred.Type {
	case steam.GuardTypeEmailCode:
		expectedInvalidCodeResult = steam.EResultInvalidLoginAuthCode
	case steam.GuardTypeDeviceCode:
		expectedInvalidCodeResult = steam.EResultTwoFactorCodeMismatch
	}

	previousWasIncorrect := false
	for {
		var (
			code string
			err  error
		)
		if preferred.Type == steam.GuardTypeEmailCode {
			code, err = s.authenticator.GetEmailCode(ctx, preferred.AssociatedMessage, previousWasIncorrect)
		} else {
			code, err = s.authenticator.GetDeviceCode(ctx, previousWasIncorrect)
		}
		if err != nil {
			return err
		}
		if code == "" {
			return oops.Code("AUTH_NO_CODE").
				Errorf("no code was provided by the authenticator")
		}

		err = s.codeSender.SendGuardCode(ctx, code, preferred.Type)
		if err == nil {
			return nil
		}
		if ResultCode(err) != expectedInvalidCodeResult {
			return err
		}

		s.logger.Debug("guard code rejected, asking authenticator again",
			"code_type", preferred.Type.String(),
		)
		previousWasIncorrect = true
	}
}

// pollDeviceConfirmation polls until the out-of-band confirmation arrives,
// waiting the service-dictated interval between attempts. It runs
// unbounded; the service eventually expires an unconfirmed session, which
// surfaces as a poll failure.
func (s *Session) pollDeviceConfirmation(ctx context.Context) (*PollResult, error) {
	var result *PollResult

	backoff := retry.NewConstant(s.pollingInterval)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, pollErr := s.Poll(ctx)
		if pollErr != nil {
			return pollErr
		}
		if res == nil {
			s.logger.Debug("waiting for device confirmation",
				"interval", s.pollingInterval,
			)
			return retry.RetryableError(errPollPending)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Poll polls the session status once. It returns (nil, nil) when the
// session has not completed yet, which is not an error; callers driving
// polls manually must wait PollingInterval before the next attempt.
func (s *Session) Poll(ctx context.Context) (*PollResult, error) {
	req := &rpc.PollAuthSessionStatusRequest{
		ClientID:  s.clientID,
		RequestID: s.requestID,
	}

	resp, err := s.client.PollAuthSessionStatus(ctx, req)
	if err != nil {
		s.metrics.recordPoll("error")
		return nil, oops.Code("AUTH_POLL_FAILED").
			With("operation", "poll auth session status").
			Wrap(err)
	}

	// Observed failure results include Expired, FileNotFound and Fail;
	// all are fatal at this layer.
	if resp.Result != steam.EResultOK {
		s.metrics.recordPoll("failed")
		return nil, remoteError("AUTH_POLL_FAILED", resp.Result,
			"failed to poll session status: %s", resp.Result)
	}

	if resp.NewClientID != 0 {
		s.logger.Debug("session client id rotated",
			"old_client_id", s.clientID,
			"new_client_id", resp.NewClientID,
		)
		s.clientID = resp.NewClientID
	}

	if s.hook != nil {
		s.hook.handlePollResponse(resp)
	}

	if resp.RefreshToken == "" {
		s.metrics.recordPoll("pending")
		return nil, nil
	}

	s.metrics.recordPoll("complete")
	return newPollResult(resp), nil
}

// Handle is an in-flight WaitForResult operation that can be awaited or
// cancelled.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	result *PollResult
	err    error
}

// Done returns a channel closed when the operation has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel stops the operation. Polling ceases at the next suspension point
// and Result reports the cancellation.
func (h *Handle) Cancel() {
	h.cancel()
}

// Result blocks until the operation finishes and returns its outcome. A
// cancelled handle reports the context error, not a result.
func (h *Handle) Result() (*PollResult, error) {
	<-h.done
	return h.result, h.err
}

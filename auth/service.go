// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vaporkit/vaporkit/internal/pwcrypt"
	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

var tracer = otel.Tracer("vaporkit/auth")

// Authentication orchestrates the login handshake: it begins credentials
// and QR sessions, owns the password encryption pipeline, and generates
// access tokens from refresh tokens.
type Authentication struct {
	client  rpc.Client
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures an Authentication.
type Option func(*Authentication)

// WithLogger sets the logger used by the service and its sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authentication) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics to the service and its sessions.
func WithMetrics(m *Metrics) Option {
	return func(a *Authentication) {
		a.metrics = m
	}
}

// NewAuthentication creates an Authentication over the given RPC client.
func NewAuthentication(client rpc.Client, opts ...Option) (*Authentication, error) {
	if client == nil {
		return nil, oops.Errorf("rpc client is required")
	}

	a := &Authentication{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GetPasswordRSAPublicKey fetches the current password-encryption key and
// server timestamp for an account.
func (a *Authentication) GetPasswordRSAPublicKey(ctx context.Context, accountName string) (*rpc.GetPasswordRSAPublicKeyResponse, error) {
	ctx, span := tracer.Start(ctx, "auth.get_password_rsa_public_key")
	defer span.End()

	resp, err := a.client.GetPasswordRSAPublicKey(ctx, &rpc.GetPasswordRSAPublicKeyRequest{
		AccountName: accountName,
	})
	if err != nil {
		return nil, a.spanError(span, oops.Code("AUTH_PUBLIC_KEY_FETCH_FAILED").
			With("operation", "get password rsa public key").
			Wrap(err))
	}
	if resp.Result != steam.EResultOK {
		return nil, a.spanError(span, remoteError("AUTH_PUBLIC_KEY_FETCH_FAILED", resp.Result,
			"failed to get password public key: %s", resp.Result))
	}

	return resp, nil
}

// BeginAuthSessionViaCredentials starts the authentication process with an
// account name and password.
func (a *Authentication) BeginAuthSessionViaCredentials(ctx context.Context, details SessionDetails) (*CredentialsSession, error) {
	ctx, span := tracer.Start(ctx, "auth.begin_session_via_credentials",
		trace.WithAttributes(attribute.String("account_name", details.Username)),
	)
	defer span.End()

	if details.Username == "" || details.Password == "" {
		return nil, a.spanError(span, oops.Code("AUTH_DETAILS_INVALID").
			Errorf("begin auth session via credentials requires a username and password"))
	}
	if !a.client.Connected() {
		return nil, a.spanError(span, oops.Code("AUTH_CONNECTION_REQUIRED").
			Errorf("the client must be connected before authenticating"))
	}

	key, err := a.GetPasswordRSAPublicKey(ctx, details.Username)
	if err != nil {
		return nil, a.spanError(span, err)
	}

	encryptedPassword, err := pwcrypt.EncryptPassword(key.PublicKeyMod, key.PublicKeyExp, details.Password)
	if err != nil {
		return nil, a.spanError(span, err)
	}

	req := &rpc.BeginAuthSessionViaCredentialsRequest{
		AccountName:         details.Username,
		EncryptedPassword:   encryptedPassword,
		EncryptionTimestamp: key.Timestamp,
		Persistence:         details.persistence(),
		WebsiteID:           details.websiteID(),
		DeviceDetails:       details.deviceDetails(),
		GuardData:           details.GuardData,
	}

	resp, err := a.client.BeginAuthSessionViaCredentials(ctx, req)
	if err != nil {
		return nil, a.spanError(span, oops.Code("AUTH_FAILED").
			With("operation", "begin auth session via credentials").
			Wrap(err))
	}
	a.metrics.recordSessionStarted("credentials", resp.Result)
	if resp.Result != steam.EResultOK {
		return nil, a.spanError(span, remoteError("AUTH_FAILED", resp.Result,
			"authentication failed via credentials: %s", resp.Result))
	}

	session := newCredentialsSession(a.client, details.Authenticator, resp, a.logger, a.metrics)
	a.logger.Debug("credentials auth session started",
		"account_name", details.Username,
		"confirmations", len(session.allowedConfirmations),
	)
	return session, nil
}

// BeginAuthSessionViaQR starts the authentication process as a QR
// challenge.
func (a *Authentication) BeginAuthSessionViaQR(ctx context.Context, details SessionDetails) (*QRSession, error) {
	ctx, span := tracer.Start(ctx, "auth.begin_session_via_qr")
	defer span.End()

	if !a.client.Connected() {
		return nil, a.spanError(span, oops.Code("AUTH_CONNECTION_REQUIRED").
			Errorf("the client must be connected before authenticating"))
	}

	req := &rpc.BeginAuthSessionViaQRRequest{
		WebsiteID:     details.websiteID(),
		DeviceDetails: details.deviceDetails(),
	}

	resp, err := a.client.BeginAuthSessionViaQR(ctx, req)
	if err != nil {
		return nil, a.spanError(span, oops.Code("AUTH_FAILED").
			With("operation", "begin auth session via qr").
			Wrap(err))
	}
	a.metrics.recordSessionStarted("qr", resp.Result)
	if resp.Result != steam.EResultOK {
		return nil, a.spanError(span, remoteError("AUTH_FAILED", resp.Result,
			"failed to begin qr auth session: %s", resp.Result))
	}

	session := newQRSession(a.client, details.Authenticator, resp, a.logger, a.metrics)
	a.logger.Debug("qr auth session started",
		"confirmations", len(session.allowedConfirmations),
	)
	return session, nil
}

// GenerateAccessTokenForApp exchanges a refresh token for a new access
// token. When allowRenewal is true the service may also rotate the refresh
// token; the rotated token is returned alongside the access token.
func (a *Authentication) GenerateAccessTokenForApp(ctx context.Context, steamID steam.SteamID, refreshToken string, allowRenewal bool) (*AccessTokenGenerateResult, error) {
	ctx, span := tracer.Start(ctx, "auth.generate_access_token_for_app",
		trace.WithAttributes(attribute.String("steam_id", steamID.String())),
	)
	defer span.End()

	req := &rpc.AccessTokenGenerateForAppRequest{
		RefreshToken: refreshToken,
		SteamID:      steamID.Uint64(),
	}
	if allowRenewal {
		req.RenewalType = steam.TokenRenewalTypeAllow
	}

	resp, err := a.client.GenerateAccessTokenForApp(ctx, req)
	if err != nil {
		return nil, a.spanError(span, oops.Code("AUTH_TOKEN_GENERATE_FAILED").
			With("operation", "generate access token for app").
			Wrap(err))
	}
	if resp.Result != steam.EResultOK {
		return nil, a.spanError(span, remoteError("AUTH_TOKEN_GENERATE_FAILED", resp.Result,
			"failed to generate token: %s", resp.Result))
	}

	return &AccessTokenGenerateResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (a *Authentication) spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package rpc defines the unified-message boundary between VaporKit and the
// Steam authentication service. The five authentication RPCs are modeled as
// a plain Go interface over request/response structs; how those messages
// reach Steam (CM socket, web API) is a transport concern behind the
// Client interface.
package rpc

import (
	"context"

	"github.com/vaporkit/vaporkit/steam"
)

// Client issues authentication RPCs against the Steam network.
//
// Every response carries an EResult; steam.EResultOK is the only success
// value. Implementations return a non-nil error only for transport-level
// failures. A remote failure is a nil error with a non-OK Result field,
// classified by the caller.
type Client interface {
	// Connected reports whether the underlying connection is usable.
	Connected() bool

	GetPasswordRSAPublicKey(ctx context.Context, req *GetPasswordRSAPublicKeyRequest) (*GetPasswordRSAPublicKeyResponse, error)
	BeginAuthSessionViaCredentials(ctx context.Context, req *BeginAuthSessionViaCredentialsRequest) (*BeginAuthSessionViaCredentialsResponse, error)
	BeginAuthSessionViaQR(ctx context.Context, req *BeginAuthSessionViaQRRequest) (*BeginAuthSessionViaQRResponse, error)
	PollAuthSessionStatus(ctx context.Context, req *PollAuthSessionStatusRequest) (*PollAuthSessionStatusResponse, error)
	UpdateAuthSessionWithSteamGuardCode(ctx context.Context, req *UpdateAuthSessionWithSteamGuardCodeRequest) (*UpdateAuthSessionWithSteamGuardCodeResponse, error)
	GenerateAccessTokenForApp(ctx context.Context, req *AccessTokenGenerateForAppRequest) (*AccessTokenGenerateForAppResponse, error)
}

// DeviceDetails describes the device a session is being established for.
type DeviceDetails struct {
	DeviceFriendlyName string
	PlatformType       steam.PlatformType
	OSType             steam.OSType
}

// GetPasswordRSAPublicKeyRequest asks for the current password-encryption
// key for an account.
type GetPasswordRSAPublicKeyRequest struct {
	AccountName string
}

// GetPasswordRSAPublicKeyResponse carries a hex-encoded RSA public key and
// the server timestamp that must be echoed alongside the encrypted password.
type GetPasswordRSAPublicKeyResponse struct {
	Result       steam.EResult
	PublicKeyMod string
	PublicKeyExp string
	Timestamp    uint64
}

type BeginAuthSessionViaCredentialsRequest struct {
	AccountName         string
	EncryptedPassword   string
	EncryptionTimestamp uint64
	Persistence         steam.SessionPersistence
	WebsiteID           string
	DeviceDetails       *DeviceDetails
	// GuardData is an opaque resumption token from a prior login on the
	// same device; empty means none.
	GuardData string
}

type BeginAuthSessionViaCredentialsResponse struct {
	Result               steam.EResult
	ClientID             uint64
	RequestID            []byte
	Interval             float32
	AllowedConfirmations []steam.AllowedConfirmation
	SteamID              uint64
	WeakToken            string
}

type BeginAuthSessionViaQRRequest struct {
	WebsiteID     string
	DeviceDetails *DeviceDetails
}

type BeginAuthSessionViaQRResponse struct {
	Result               steam.EResult
	ClientID             uint64
	ChallengeURL         string
	RequestID            []byte
	Interval             float32
	AllowedConfirmations []steam.AllowedConfirmation
	Version              int32
}

type PollAuthSessionStatusRequest struct {
	ClientID  uint64
	RequestID []byte
}

type PollAuthSessionStatusResponse struct {
	Result               steam.EResult
	NewClientID          uint64
	NewChallengeURL      string
	RefreshToken         string
	AccessToken          string
	HadRemoteInteraction bool
	AccountName          string
	NewGuardData         string
}

type UpdateAuthSessionWithSteamGuardCodeRequest struct {
	ClientID uint64
	SteamID  uint64
	Code     string
	CodeType steam.GuardType
}

type UpdateAuthSessionWithSteamGuardCodeResponse struct {
	Result steam.EResult
}

type AccessTokenGenerateForAppRequest struct {
	RefreshToken string
	SteamID      uint64
	RenewalType  steam.TokenRenewalType
}

type AccessTokenGenerateForAppResponse struct {
	Result       steam.EResult
	AccessToken  string
	RefreshToken string
}

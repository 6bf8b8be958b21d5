// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package authtest provides scripted implementations of rpc.Client and
// auth.Authenticator for exercising the login handshake in tests.
package authtest

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

// Client is a scripted rpc.Client. Response fields are consumed in order
// by the corresponding method; an exhausted poll script yields a pending
// response (OK, no tokens). Every request is recorded for assertions.
//
// Client is safe for concurrent use.
type Client struct {
	mu sync.Mutex

	// Disconnected makes Connected report false.
	Disconnected bool

	PublicKey        *rpc.GetPasswordRSAPublicKeyResponse
	BeginCredentials *rpc.BeginAuthSessionViaCredentialsResponse
	BeginQR          *rpc.BeginAuthSessionViaQRResponse
	Polls            []*rpc.PollAuthSessionStatusResponse
	GuardCodes       []*rpc.UpdateAuthSessionWithSteamGuardCodeResponse
	AccessToken      *rpc.AccessTokenGenerateForAppResponse

	PublicKeyCalls        []rpc.GetPasswordRSAPublicKeyRequest
	BeginCredentialsCalls []rpc.BeginAuthSessionViaCredentialsRequest
	BeginQRCalls          []rpc.BeginAuthSessionViaQRRequest
	PollCalls             []rpc.PollAuthSessionStatusRequest
	GuardCodeCalls        []rpc.UpdateAuthSessionWithSteamGuardCodeRequest
	AccessTokenCalls      []rpc.AccessTokenGenerateForAppRequest
}

var _ rpc.Client = (*Client)(nil)

// Connected implements rpc.Client.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.Disconnected
}

// PollCount returns how many polls have been issued so far.
func (c *Client) PollCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.PollCalls)
}

func (c *Client) GetPasswordRSAPublicKey(_ context.Context, req *rpc.GetPasswordRSAPublicKeyRequest) (*rpc.GetPasswordRSAPublicKeyResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PublicKeyCalls = append(c.PublicKeyCalls, *req)
	if c.PublicKey == nil {
		return nil, oops.Errorf("authtest: no public key scripted")
	}
	return c.PublicKey, nil
}

func (c *Client) BeginAuthSessionViaCredentials(_ context.Context, req *rpc.BeginAuthSessionViaCredentialsRequest) (*rpc.BeginAuthSessionViaCredentialsResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BeginCredentialsCalls = append(c.BeginCredentialsCalls, *req)
	if c.BeginCredentials == nil {
		return nil, oops.Errorf("authtest: no begin-credentials response scripted")
	}
	return c.BeginCredentials, nil
}

func (c *Client) BeginAuthSessionViaQR(_ context.Context, req *rpc.BeginAuthSessionViaQRRequest) (*rpc.BeginAuthSessionViaQRResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BeginQRCalls = append(c.BeginQRCalls, *req)
	if c.BeginQR == nil {
		return nil, oops.Errorf("authtest: no begin-qr response scripted")
	}
	return c.BeginQR, nil
}

func (c *Client) PollAuthSessionStatus(_ context.Context, req *rpc.PollAuthSessionStatusRequest) (*rpc.PollAuthSessionStatusResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PollCalls = append(c.PollCalls, *req)
	if len(c.Polls) == 0 {
		return &rpc.PollAuthSessionStatusResponse{Result: steam.EResultOK}, nil
	}
	resp := c.Polls[0]
	c.Polls = c.Polls[1:]
	return resp, nil
}

func (c *Client) UpdateAuthSessionWithSteamGuardCode(_ context.Context, req *rpc.UpdateAuthSessionWithSteamGuardCodeRequest) (*rpc.UpdateAuthSessionWithSteamGuardCodeResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GuardCodeCalls = append(c.GuardCodeCalls, *req)
	if len(c.GuardCodes) == 0 {
		return &rpc.UpdateAuthSessionWithSteamGuardCodeResponse{Result: steam.EResultOK}, nil
	}
	resp := c.GuardCodes[0]
	c.GuardCodes = c.GuardCodes[1:]
	return resp, nil
}

func (c *Client) GenerateAccessTokenForApp(_ context.Context, req *rpc.AccessTokenGenerateForAppRequest) (*rpc.AccessTokenGenerateForAppResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AccessTokenCalls = append(c.AccessTokenCalls, *req)
	if c.AccessToken == nil {
		return nil, oops.Errorf("authtest: no access-token response scripted")
	}
	return c.AccessToken, nil
}

// CodePrompt records one authenticator code request.
type CodePrompt struct {
	Message              string
	PreviousWasIncorrect bool
}

// Authenticator is a scripted auth.Authenticator. Codes are consumed in
// order; requesting more codes than scripted returns an error.
type Authenticator struct {
	mu sync.Mutex

	EmailCodes  []string
	DeviceCodes []string

	// AcceptDevice is returned by AcceptDeviceConfirmation.
	AcceptDevice bool
	// AcceptDeviceErr, when set, is returned instead.
	AcceptDeviceErr error

	EmailPrompts  []CodePrompt
	DevicePrompts []CodePrompt
	AcceptCalls   int
}

func (a *Authenticator) GetEmailCode(_ context.Context, message string, previousWasIncorrect bool) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.EmailPrompts = append(a.EmailPrompts, CodePrompt{Message: message, PreviousWasIncorrect: previousWasIncorrect})
	if len(a.EmailCodes) == 0 {
		return "", oops.Errorf("authtest: no email code scripted")
	}
	code := a.EmailCodes[0]
	a.EmailCodes = a.EmailCodes[1:]
	return code, nil
}

func (a *Authenticator) GetDeviceCode(_ context.Context, previousWasIncorrect bool) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.DevicePrompts = append(a.DevicePrompts, CodePrompt{PreviousWasIncorrect: previousWasIncorrect})
	if len(a.DeviceCodes) == 0 {
		return "", oops.Errorf("authtest: no device code scripted")
	}
	code := a.DeviceCodes[0]
	a.DeviceCodes = a.DeviceCodes[1:]
	return code, nil
}

func (a *Authenticator) AcceptDeviceConfirmation(_ context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.AcceptCalls++
	if a.AcceptDeviceErr != nil {
		return false, a.AcceptDeviceErr
	}
	return a.AcceptDevice, nil
}

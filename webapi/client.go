// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package webapi implements rpc.Client over the public
// IAuthenticationService web API: form-encoded requests, JSON responses,
// and the result code carried in the X-eresult header.
package webapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

// DefaultBaseURL is the production Steam web API endpoint.
const DefaultBaseURL = "https://api.steampowered.com"

const serviceInterface = "IAuthenticationService"

// Client talks to the IAuthenticationService web API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ rpc.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a web API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connected implements rpc.Client. The web API is stateless, so a client
// with an HTTP transport is always considered connected.
func (c *Client) Connected() bool {
	return c.httpClient != nil
}

func (c *Client) GetPasswordRSAPublicKey(ctx context.Context, req *rpc.GetPasswordRSAPublicKeyRequest) (*rpc.GetPasswordRSAPublicKeyResponse, error) {
	params := url.Values{}
	params.Set("account_name", req.AccountName)

	var body struct {
		PublicKeyMod string     `json:"publickey_mod"`
		PublicKeyExp string     `json:"publickey_exp"`
		Timestamp    jsonUint64 `json:"timestamp"`
	}
	result, err := c.call(ctx, http.MethodGet, "GetPasswordRSAPublicKey", params, &body)
	if err != nil {
		return nil, err
	}

	return &rpc.GetPasswordRSAPublicKeyResponse{
		Result:       result,
		PublicKeyMod: body.PublicKeyMod,
		PublicKeyExp: body.PublicKeyExp,
		Timestamp:    uint64(body.Timestamp),
	}, nil
}

func (c *Client) BeginAuthSessionViaCredentials(ctx context.Context, req *rpc.BeginAuthSessionViaCredentialsRequest) (*rpc.BeginAuthSessionViaCredentialsResponse, error) {
	params := url.Values{}
	params.Set("account_name", req.AccountName)
	params.Set("encrypted_password", req.EncryptedPassword)
	params.Set("encryption_timestamp", strconv.FormatUint(req.EncryptionTimestamp, 10))
	params.Set("persistence", strconv.FormatInt(int64(req.Persistence), 10))
	params.Set("website_id", req.WebsiteID)
	if req.GuardData != "" {
		params.Set("guard_data", req.GuardData)
	}
	addDeviceDetails(params, req.DeviceDetails)

	var body struct {
		ClientID             jsonUint64         `json:"client_id"`
		RequestID            string             `json:"request_id"`
		Interval             float32            `json:"interval"`
		AllowedConfirmations []jsonConfirmation `json:"allowed_confirmations"`
		SteamID              jsonUint64         `json:"steamid"`
		WeakToken            string             `json:"weak_token"`
	}
	result, err := c.call(ctx, http.MethodPost, "BeginAuthSessionViaCredentials", params, &body)
	if err != nil {
		return nil, err
	}

	requestID, err := decodeRequestID(body.RequestID)
	if err != nil {
		return nil, err
	}

	return &rpc.BeginAuthSessionViaCredentialsResponse{
		Result:               result,
		ClientID:             uint64(body.ClientID),
		RequestID:            requestID,
		Interval:             body.Interval,
		AllowedConfirmations: convertConfirmations(body.AllowedConfirmations),
		SteamID:              uint64(body.SteamID),
		WeakToken:            body.WeakToken,
	}, nil
}

func (c *Client) BeginAuthSessionViaQR(ctx context.Context, req *rpc.BeginAuthSessionViaQRRequest) (*rpc.BeginAuthSessionViaQRResponse, error) {
	params := url.Values{}
	params.Set("website_id", req.WebsiteID)
	addDeviceDetails(params, req.DeviceDetails)

	var body struct {
		ClientID             jsonUint64         `json:"client_id"`
		ChallengeURL         string             `json:"challenge_url"`
		RequestID            string             `json:"request_id"`
		Interval             float32            `json:"interval"`
		AllowedConfirmations []jsonConfirmation `json:"allowed_confirmations"`
		Version              int32              `json:"version"`
	}
	result, err := c.call(ctx, http.MethodPost, "BeginAuthSessionViaQR", params, &body)
	if err != nil {
		return nil, err
	}

	requestID, err := decodeRequestID(body.RequestID)
	if err != nil {
		return nil, err
	}

	return &rpc.BeginAuthSessionViaQRResponse{
		Result:               result,
		ClientID:             uint64(body.ClientID),
		ChallengeURL:         body.ChallengeURL,
		RequestID:            requestID,
		Interval:             body.Interval,
		AllowedConfirmations: convertConfirmations(body.AllowedConfirmations),
		Version:              body.Version,
	}, nil
}

func (c *Client) PollAuthSessionStatus(ctx context.Context, req *rpc.PollAuthSessionStatusRequest) (*rpc.PollAuthSessionStatusResponse, error) {
	params := url.Values{}
	params.Set("client_id", strconv.FormatUint(req.ClientID, 10))
	params.Set("request_id", base64.StdEncoding.EncodeToString(req.RequestID))

	var body struct {
		NewClientID          jsonUint64 `json:"new_client_id"`
		NewChallengeURL      string     `json:"new_challenge_url"`
		RefreshToken         string     `json:"refresh_token"`
		AccessToken          string     `json:"access_token"`
		HadRemoteInteraction bool       `json:"had_remote_interaction"`
		AccountName          string     `json:"account_name"`
		NewGuardData         string     `json:"new_guard_data"`
	}
	result, err := c.call(ctx, http.MethodPost, "PollAuthSessionStatus", params, &body)
	if err != nil {
		return nil, err
	}

	return &rpc.PollAuthSessionStatusResponse{
		Result:               result,
		NewClientID:          uint64(body.NewClientID),
		NewChallengeURL:      body.NewChallengeURL,
		RefreshToken:         body.RefreshToken,
		AccessToken:          body.AccessToken,
		HadRemoteInteraction: body.HadRemoteInteraction,
		AccountName:          body.AccountName,
		NewGuardData:         body.NewGuardData,
	}, nil
}

func (c *Client) UpdateAuthSessionWithSteamGuardCode(ctx context.Context, req *rpc.UpdateAuthSessionWithSteamGuardCodeRequest) (*rpc.UpdateAuthSessionWithSteamGuardCodeResponse, error) {
	params := url.Values{}
	params.Set("client_id", strconv.FormatUint(req.ClientID, 10))
	params.Set("steamid", strconv.FormatUint(req.SteamID, 10))
	params.Set("code", req.Code)
	params.Set("code_type", strconv.FormatInt(int64(req.CodeType), 10))

	var body struct{}
	result, err := c.call(ctx, http.MethodPost, "UpdateAuthSessionWithSteamGuardCode", params, &body)
	if err != nil {
		return nil, err
	}

	return &rpc.UpdateAuthSessionWithSteamGuardCodeResponse{Result: result}, nil
}

func (c *Client) GenerateAccessTokenForApp(ctx context.Context, req *rpc.AccessTokenGenerateForAppRequest) (*rpc.AccessTokenGenerateForAppResponse, error) {
	params := url.Values{}
	params.Set("refresh_token", req.RefreshToken)
	params.Set("steamid", strconv.FormatUint(req.SteamID, 10))
	params.Set("renewal_type", strconv.FormatInt(int64(req.RenewalType), 10))

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	result, err := c.call(ctx, http.MethodPost, "GenerateAccessTokenForApp", params, &body)
	if err != nil {
		return nil, err
	}

	return &rpc.AccessTokenGenerateForAppResponse{
		Result:       result,
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}, nil
}

// call performs one API request and decodes the "response" envelope into
// out. The service reports its result code in the X-eresult header; a
// missing header on a 200 response means OK.
func (c *Client) call(ctx context.Context, method, operation string, params url.Values, out any) (steam.EResult, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/v1/", c.baseURL, serviceInterface, operation)

	var httpReq *http.Request
	var err error
	if method == http.MethodGet {
		httpReq, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if httpReq != nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
			With("operation", operation).
			Wrap(err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
			With("operation", operation).
			Wrap(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
			With("operation", operation).
			With("status", httpResp.StatusCode).
			Errorf("unexpected HTTP status %d", httpResp.StatusCode)
	}

	result := steam.EResultOK
	if header := httpResp.Header.Get("X-eresult"); header != "" {
		value, parseErr := strconv.ParseInt(header, 10, 32)
		if parseErr != nil {
			return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
				With("operation", operation).
				With("x_eresult", header).
				Wrap(parseErr)
		}
		result = steam.EResult(value)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
			With("operation", operation).
			Wrap(err)
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
				With("operation", operation).
				Wrap(err)
		}
	}
	if len(envelope.Response) > 0 {
		if err := json.Unmarshal(envelope.Response, out); err != nil {
			return steam.EResultInvalid, oops.Code("WEBAPI_REQUEST_FAILED").
				With("operation", operation).
				Wrap(err)
		}
	}

	return result, nil
}

func addDeviceDetails(params url.Values, details *rpc.DeviceDetails) {
	if details == nil {
		return
	}
	params.Set("device_friendly_name", details.DeviceFriendlyName)
	params.Set("platform_type", strconv.FormatInt(int64(details.PlatformType), 10))
	params.Set("os_type", strconv.FormatInt(int64(details.OSType), 10))
}

func decodeRequestID(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	requestID, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, oops.Code("WEBAPI_REQUEST_FAILED").
			With("field", "request_id").
			Wrap(err)
	}
	return requestID, nil
}

// jsonUint64 accepts the 64-bit ids the API emits as either JSON numbers
// or decimal strings.
type jsonUint64 uint64

func (v *jsonUint64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		//nolint:wrapcheck // json.Unmarshaler passthrough
		return err
	}
	*v = jsonUint64(parsed)
	return nil
}

type jsonConfirmation struct {
	ConfirmationType  int32  `json:"confirmation_type"`
	AssociatedMessage string `json:"associated_message"`
}

func convertConfirmations(confirmations []jsonConfirmation) []steam.AllowedConfirmation {
	out := make([]steam.AllowedConfirmation, 0, len(confirmations))
	for _, c := range confirmations {
		out = append(out, steam.AllowedConfirmation{
			Type:              steam.GuardType(c.ConfirmationType),
			AssociatedMessage: c.AssociatedMessage,
		})
	}
	return out
}

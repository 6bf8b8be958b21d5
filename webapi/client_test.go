// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package webapi_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaporkit/vaporkit/pkg/errutil"
	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
	"github.com/vaporkit/vaporkit/webapi"
)

func TestGetPasswordRSAPublicKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/IAuthenticationService/GetPasswordRSAPublicKey/v1/", r.URL.Path)
		assert.Equal(t, "gordon", r.URL.Query().Get("account_name"))

		w.Header().Set("X-eresult", "1")
		_, _ = w.Write([]byte(`{"response":{
			"publickey_mod":"c0ffee",
			"publickey_exp":"010001",
			"timestamp":"112358"
		}}`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))
	require.True(t, client.Connected())

	resp, err := client.GetPasswordRSAPublicKey(context.Background(), &rpc.GetPasswordRSAPublicKeyRequest{
		AccountName: "gordon",
	})
	require.NoError(t, err)

	assert.Equal(t, steam.EResultOK, resp.Result)
	assert.Equal(t, "c0ffee", resp.PublicKeyMod)
	assert.Equal(t, "010001", resp.PublicKeyExp)
	assert.Equal(t, uint64(112358), resp.Timestamp)
}

func TestBeginAuthSessionViaCredentials(t *testing.T) {
	t.Parallel()

	requestID := []byte{0xde, 0xad, 0xbe, 0xef}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/IAuthenticationService/BeginAuthSessionViaCredentials/v1/", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "gordon", r.PostForm.Get("account_name"))
		assert.Equal(t, "ciphertext", r.PostForm.Get("encrypted_password"))
		assert.Equal(t, "112358", r.PostForm.Get("encryption_timestamp"))
		assert.Equal(t, "1", r.PostForm.Get("persistence"))
		assert.Equal(t, "Client", r.PostForm.Get("website_id"))
		assert.Equal(t, "test-rig", r.PostForm.Get("device_friendly_name"))

		_, _ = w.Write([]byte(`{"response":{
			"client_id":"17742",
			"request_id":"` + base64.StdEncoding.EncodeToString(requestID) + `",
			"interval":5,
			"allowed_confirmations":[
				{"confirmation_type":3},
				{"confirmation_type":2,"associated_message":"g***@example.com"}
			],
			"steamid":"76561198012411678",
			"weak_token":"weak"
		}}`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	resp, err := client.BeginAuthSessionViaCredentials(context.Background(), &rpc.BeginAuthSessionViaCredentialsRequest{
		AccountName:         "gordon",
		EncryptedPassword:   "ciphertext",
		EncryptionTimestamp: 112358,
		Persistence:         steam.SessionPersistencePersistent,
		WebsiteID:           "Client",
		DeviceDetails: &rpc.DeviceDetails{
			DeviceFriendlyName: "test-rig",
			PlatformType:       steam.PlatformTypeSteamClient,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, steam.EResultOK, resp.Result)
	assert.Equal(t, uint64(17742), resp.ClientID)
	assert.Equal(t, requestID, resp.RequestID)
	assert.Equal(t, float32(5), resp.Interval)
	assert.Equal(t, uint64(76561198012411678), resp.SteamID)
	assert.Equal(t, "weak", resp.WeakToken)

	require.Len(t, resp.AllowedConfirmations, 2)
	assert.Equal(t, steam.GuardTypeDeviceCode, resp.AllowedConfirmations[0].Type)
	assert.Equal(t, steam.GuardTypeEmailCode, resp.AllowedConfirmations[1].Type)
	assert.Equal(t, "g***@example.com", resp.AllowedConfirmations[1].AssociatedMessage)
}

func TestPollAuthSessionStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "17742", r.PostForm.Get("client_id"))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x01}), r.PostForm.Get("request_id"))

		_, _ = w.Write([]byte(`{"response":{
			"new_client_id":"999",
			"refresh_token":"refresh-jwt",
			"access_token":"access-jwt",
			"account_name":"gordon",
			"had_remote_interaction":true
		}}`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	resp, err := client.PollAuthSessionStatus(context.Background(), &rpc.PollAuthSessionStatusRequest{
		ClientID:  17742,
		RequestID: []byte{0x01},
	})
	require.NoError(t, err)

	assert.Equal(t, steam.EResultOK, resp.Result)
	assert.Equal(t, uint64(999), resp.NewClientID)
	assert.Equal(t, "refresh-jwt", resp.RefreshToken)
	assert.Equal(t, "access-jwt", resp.AccessToken)
	assert.Equal(t, "gordon", resp.AccountName)
	assert.True(t, resp.HadRemoteInteraction)
}

func TestCall_EResultHeader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-eresult", "88")
		_, _ = w.Write([]byte(`{"response":{}}`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	resp, err := client.UpdateAuthSessionWithSteamGuardCode(context.Background(), &rpc.UpdateAuthSessionWithSteamGuardCodeRequest{
		ClientID: 17742,
		SteamID:  76561198012411678,
		Code:     "12345",
		CodeType: steam.GuardTypeDeviceCode,
	})
	require.NoError(t, err)

	// A non-OK result is data, not a transport error; the caller decides
	// how to treat it.
	assert.Equal(t, steam.EResultTwoFactorCodeMismatch, resp.Result)
}

func TestCall_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	_, err := client.PollAuthSessionStatus(context.Background(), &rpc.PollAuthSessionStatusRequest{ClientID: 1})
	errutil.AssertErrorCode(t, err, "WEBAPI_REQUEST_FAILED")
}

func TestCall_BadJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	_, err := client.GetPasswordRSAPublicKey(context.Background(), &rpc.GetPasswordRSAPublicKeyRequest{
		AccountName: "gordon",
	})
	errutil.AssertErrorCode(t, err, "WEBAPI_REQUEST_FAILED")
}

func TestGenerateAccessTokenForApp(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IAuthenticationService/GenerateAccessTokenForApp/v1/", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))
		assert.Equal(t, "1", r.PostForm.Get("renewal_type"))

		_, _ = w.Write([]byte(`{"response":{
			"access_token":"new-access",
			"refresh_token":"rotated-refresh"
		}}`))
	}))
	defer server.Close()

	client := webapi.NewClient(webapi.WithBaseURL(server.URL))

	resp, err := client.GenerateAccessTokenForApp(context.Background(), &rpc.AccessTokenGenerateForAppRequest{
		RefreshToken: "old-refresh",
		SteamID:      76561198012411678,
		RenewalType:  steam.TokenRenewalTypeAllow,
	})
	require.NoError(t, err)

	assert.Equal(t, steam.EResultOK, resp.Result)
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "rotated-refresh", resp.RefreshToken)
}

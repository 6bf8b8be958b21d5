// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"

	"github.com/vaporkit/vaporkit/steam"
)

// TokenDetails is the decoded payload of an issued token. Refresh and
// access tokens are JWTs whose subject is the account's SteamID.
type TokenDetails struct {
	SteamID  steam.SteamID
	Issuer   string
	Audience []string
	IssuedAt time.Time
	Expiry   time.Time
}

// ParseTokenDetails decodes the payload of a refresh or access token
// without verifying its signature. The signing key belongs to the
// service, so clients can only inspect the claims.
func ParseTokenDetails(token string) (*TokenDetails, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, oops.Code("AUTH_TOKEN_INVALID").
			Wrap(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, oops.Code("AUTH_TOKEN_INVALID").
			Errorf("token carries no claims")
	}

	details := &TokenDetails{}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		id, parseErr := steam.ParseSteamID(sub)
		if parseErr != nil {
			return nil, oops.Code("AUTH_TOKEN_INVALID").
				With("subject", sub).
				Wrap(parseErr)
		}
		details.SteamID = id
	}

	if iss, err := claims.GetIssuer(); err == nil {
		details.Issuer = iss
	}
	if aud, err := claims.GetAudience(); err == nil {
		details.Audience = aud
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		details.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		details.Expiry = exp.Time
	}

	return details, nil
}

// Expired reports whether the token was already expired at the given time.
// Tokens without an expiry claim never report expired.
func (d *TokenDetails) Expired(now time.Time) bool {
	return !d.Expiry.IsZero() && now.After(d.Expiry)
}

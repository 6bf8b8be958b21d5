// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"os"

	"github.com/vaporkit/vaporkit/rpc"
	"github.com/vaporkit/vaporkit/steam"
)

// SessionDetails configures a session-begin operation.
type SessionDetails struct {
	// Username and Password are required for the credentials flow and
	// ignored by the QR flow.
	Username string
	Password string

	// PersistentSession requests a session that survives beyond the
	// current connection.
	PersistentSession bool

	// WebsiteID identifies the consumer of the tokens; defaults to
	// "Unknown".
	WebsiteID string

	// DeviceFriendlyName defaults to the local hostname.
	DeviceFriendlyName string

	// PlatformType defaults to the Steam client platform.
	PlatformType steam.PlatformType

	OSType steam.OSType

	// GuardData is an opaque resumption token from a previous login on
	// this device, letting the account skip guard checks.
	GuardData string

	// Authenticator satisfies guard confirmations. May be nil, which
	// restricts the session to confirmation types needing no input.
	Authenticator Authenticator
}

func (d *SessionDetails) websiteID() string {
	if d.WebsiteID == "" {
		return "Unknown"
	}
	return d.WebsiteID
}

func (d *SessionDetails) deviceDetails() *rpc.DeviceDetails {
	name := d.DeviceFriendlyName
	if name == "" {
		if hostname, err := os.Hostname(); err == nil {
			name = hostname
		} else {
			name = "vaporkit"
		}
	}

	platform := d.PlatformType
	if platform == steam.PlatformTypeUnknown {
		platform = steam.PlatformTypeSteamClient
	}

	return &rpc.DeviceDetails{
		DeviceFriendlyName: name,
		PlatformType:       platform,
		OSType:             d.OSType,
	}
}

func (d *SessionDetails) persistence() steam.SessionPersistence {
	if d.PersistentSession {
		return steam.SessionPersistencePersistent
	}
	return steam.SessionPersistenceEphemeral
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package steam

import "strconv"

// GuardType identifies a method by which a login attempt can be proven
// legitimate: a code sent by email, a code from the mobile authenticator,
// a confirmation prompt on another device, and so on.
type GuardType int32

const (
	GuardTypeUnknown            GuardType = 0
	GuardTypeNone               GuardType = 1
	GuardTypeEmailCode          GuardType = 2
	GuardTypeDeviceCode         GuardType = 3
	GuardTypeDeviceConfirmation GuardType = 4
	GuardTypeEmailConfirmation  GuardType = 5
	GuardTypeMachineToken       GuardType = 6
)

var guardTypeNames = map[GuardType]string{
	GuardTypeUnknown:            "Unknown",
	GuardTypeNone:               "None",
	GuardTypeEmailCode:          "EmailCode",
	GuardTypeDeviceCode:         "DeviceCode",
	GuardTypeDeviceConfirmation: "DeviceConfirmation",
	GuardTypeEmailConfirmation:  "EmailConfirmation",
	GuardTypeMachineToken:       "MachineToken",
}

func (t GuardType) String() string {
	if name, ok := guardTypeNames[t]; ok {
		return name
	}
	return "GuardType(" + strconv.FormatInt(int64(t), 10) + ")"
}

// AllowedConfirmation is one guard method the service is willing to accept
// for a session. AssociatedMessage carries human-readable context, such as
// the masked email address a code was sent to.
type AllowedConfirmation struct {
	Type              GuardType
	AssociatedMessage string
}

// SessionPersistence controls whether a login session survives beyond the
// current connection.
type SessionPersistence int32

const (
	SessionPersistenceInvalid    SessionPersistence = -1
	SessionPersistenceEphemeral  SessionPersistence = 0
	SessionPersistencePersistent SessionPersistence = 1
)

// TokenRenewalType controls whether the service may renew a refresh token
// while generating an access token from it.
type TokenRenewalType int32

const (
	TokenRenewalTypeNone  TokenRenewalType = 0
	TokenRenewalTypeAllow TokenRenewalType = 1
)

// PlatformType identifies the kind of client requesting authentication.
type PlatformType int32

const (
	PlatformTypeUnknown     PlatformType = 0
	PlatformTypeSteamClient PlatformType = 1
	PlatformTypeWebBrowser  PlatformType = 2
	PlatformTypeMobileApp   PlatformType = 3
)

// OSType identifies the operating system of the device details record.
// Values match the protocol enum; only commonly reported ones are named.
type OSType int32

const (
	OSTypeUnknown        OSType = -1
	OSTypeWeb            OSType = -700
	OSTypeIOSUnknown     OSType = -600
	OSTypeAndroidUnknown OSType = -500
	OSTypeLinuxUnknown   OSType = -203
	OSTypeMacOSUnknown   OSType = -102
	OSTypeWindows10      OSType = 16
	OSTypeWindows11      OSType = 20
)

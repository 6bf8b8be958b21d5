// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import "context"

// Authenticator is the caller-supplied capability that satisfies guard
// confirmations. How it obtains codes (mobile app, SMS, manual entry) is
// its own business; the session only drives the protocol.
//
// All methods may block on user interaction and must honor ctx
// cancellation.
type Authenticator interface {
	// GetEmailCode returns the guard code sent to the account's email
	// address. message carries human-readable context from the service,
	// typically the masked address the code was sent to.
	// previousWasIncorrect is true when the last submitted code was
	// rejected.
	GetEmailCode(ctx context.Context, message string, previousWasIncorrect bool) (string, error)

	// GetDeviceCode returns the guard code from the mobile authenticator.
	GetDeviceCode(ctx context.Context, previousWasIncorrect bool) (string, error)

	// AcceptDeviceConfirmation decides how to proceed when the service
	// offers confirmation on another device: true polls until the prompt
	// is approved, false falls back to the next allowed confirmation
	// method.
	AcceptDeviceConfirmation(ctx context.Context) (bool, error)
}

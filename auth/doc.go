// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package auth implements the Steam login handshake: beginning credentials
// and QR authentication sessions, selecting and satisfying a guard
// confirmation method, polling the session until the service yields
// tokens, and generating access tokens from refresh tokens.
//
// The entry point is Authentication, constructed over an rpc.Client. Its
// begin operations return a CredentialsSession or QRSession whose
// WaitForResult drives the whole confirm-then-poll protocol, calling back
// into a caller-supplied Authenticator when a code or device approval is
// needed.
package auth

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"github.com/samber/oops"

	"github.com/vaporkit/vaporkit/steam"
)

// Remote failures carry the service result code under this context key;
// ResultCode retrieves it.
const resultContextKey = "result"

// remoteError builds an error for a remote-reported failure, attaching the
// service result code so callers can classify it.
func remoteError(code string, result steam.EResult, format string, args ...any) error {
	return oops.Code(code).
		With(resultContextKey, result).
		Errorf(format, args...)
}

// ResultCode returns the remote result code attached to err, or
// steam.EResultInvalid when err carries none. Local validation and
// precondition errors never carry a result code.
func ResultCode(err error) steam.EResult {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return steam.EResultInvalid
	}
	if result, ok := oopsErr.Context()[resultContextKey].(steam.EResult); ok {
		return result
	}
	return steam.EResultInvalid
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package steam_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaporkit/vaporkit/steam"
)

func TestEResultString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OK", steam.EResultOK.String())
	assert.Equal(t, "InvalidLoginAuthCode", steam.EResultInvalidLoginAuthCode.String())
	assert.Equal(t, "TwoFactorCodeMismatch", steam.EResultTwoFactorCodeMismatch.String())
	assert.Equal(t, "EResult(12345)", steam.EResult(12345).String())
}

func TestGuardTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DeviceConfirmation", steam.GuardTypeDeviceConfirmation.String())
	assert.Equal(t, "GuardType(99)", steam.GuardType(99).String())
}

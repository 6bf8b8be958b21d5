// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"cmp"
	"slices"

	"github.com/vaporkit/vaporkit/steam"
)

// guardPreference is the fixed order in which confirmation methods are
// preferred, most preferred first. Types not listed rank with Unknown.
var guardPreference = []steam.GuardType{
	steam.GuardTypeNone,
	steam.GuardTypeDeviceConfirmation,
	steam.GuardTypeDeviceCode,
	steam.GuardTypeEmailCode,
	steam.GuardTypeEmailConfirmation,
	steam.GuardTypeMachineToken,
	steam.GuardTypeUnknown,
}

func guardRank(t steam.GuardType) int {
	for i, p := range guardPreference {
		if p == t {
			return i
		}
	}
	return len(guardPreference)
}

// SortConfirmations returns a new slice of confirmations ordered by
// preference, most preferred first. The sort is stable and idempotent, and
// confirmation types outside the known set sort last.
func SortConfirmations(confirmations []steam.AllowedConfirmation) []steam.AllowedConfirmation {
	sorted := slices.Clone(confirmations)
	slices.SortStableFunc(sorted, func(a, b steam.AllowedConfirmation) int {
		return cmp.Compare(guardRank(a.Type), guardRank(b.Type))
	})
	return sorted
}

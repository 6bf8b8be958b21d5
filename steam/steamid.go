// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

// Package steam holds the shared protocol vocabulary used across VaporKit:
// account identifiers, result codes, and guard confirmation types.
package steam

import (
	"strconv"

	"github.com/samber/oops"
)

// SteamID identifies a Steam account. It packs universe, account type,
// instance, and account id into a single 64-bit value.
type SteamID uint64

// Bit layout of a SteamID, low to high:
// 32-bit account id, 20-bit instance, 4-bit account type, 8-bit universe.
const (
	accountIDMask  = 0xFFFFFFFF
	instanceMask   = 0xFFFFF
	instanceShift  = 32
	typeMask       = 0xF
	typeShift      = 52
	universeShift  = 56
	universePublic = 1
	typeIndividual = 1
	desktopInstance = 1
)

// NewIndividualID builds a SteamID for an individual account in the public
// universe with the desktop instance.
func NewIndividualID(accountID uint32) SteamID {
	return SteamID(uint64(accountID) |
		uint64(desktopInstance)<<instanceShift |
		uint64(typeIndividual)<<typeShift |
		uint64(universePublic)<<universeShift)
}

// ParseSteamID parses the decimal 64-bit representation of a SteamID, the
// form Steam uses in token subjects and web APIs.
func ParseSteamID(s string) (SteamID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, oops.Code("STEAMID_INVALID").
			With("value", s).
			Wrap(err)
	}
	return SteamID(v), nil
}

// AccountID returns the low 32-bit account number.
func (id SteamID) AccountID() uint32 {
	return uint32(id & accountIDMask)
}

// AccountInstance returns the 20-bit instance field.
func (id SteamID) AccountInstance() uint32 {
	return uint32((id >> instanceShift) & instanceMask)
}

// AccountType returns the 4-bit account type field.
func (id SteamID) AccountType() uint32 {
	return uint32((id >> typeShift) & typeMask)
}

// Universe returns the 8-bit universe field.
func (id SteamID) Universe() uint32 {
	return uint32(id >> universeShift)
}

// Uint64 returns the packed 64-bit value.
func (id SteamID) Uint64() uint64 {
	return uint64(id)
}

// IsValid reports whether the id has a non-zero account number and a
// recognizable universe.
func (id SteamID) IsValid() bool {
	return id.AccountID() != 0 && id.Universe() != 0
}

func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

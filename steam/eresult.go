// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package steam

import "strconv"

// EResult is the result code carried by every response from the Steam
// network. EResultOK is the only success value; everything else is a
// remote-reported failure.
type EResult int32

// Result codes observed by the authentication flows. The full protocol
// enum is much larger; only values this library inspects or reports are
// named here, unknown values still round-trip through the type.
const (
	EResultInvalid                       EResult = 0
	EResultOK                            EResult = 1
	EResultFail                          EResult = 2
	EResultNoConnection                  EResult = 3
	EResultInvalidPassword               EResult = 5
	EResultFileNotFound                  EResult = 9
	EResultBusy                          EResult = 10
	EResultInvalidState                  EResult = 11
	EResultAccessDenied                  EResult = 15
	EResultTimeout                       EResult = 16
	EResultAccountNotFound               EResult = 18
	EResultServiceUnavailable            EResult = 20
	EResultPending                       EResult = 22
	EResultLimitExceeded                 EResult = 25
	EResultRevoked                       EResult = 26
	EResultExpired                       EResult = 27
	EResultDuplicateRequest              EResult = 29
	EResultAccountLogonDenied            EResult = 63
	EResultInvalidLoginAuthCode          EResult = 65
	EResultAccountLogonDeniedNoMail      EResult = 66
	EResultRateLimitExceeded             EResult = 84
	EResultAccountLoginDeniedNeedTwoFactor EResult = 85
	EResultAccountLoginDeniedThrottle    EResult = 87
	EResultTwoFactorCodeMismatch         EResult = 88
	EResultTwoFactorActivationCodeMismatch EResult = 89
)

var eresultNames = map[EResult]string{
	EResultInvalid:                         "Invalid",
	EResultOK:                              "OK",
	EResultFail:                            "Fail",
	EResultNoConnection:                    "NoConnection",
	EResultInvalidPassword:                 "InvalidPassword",
	EResultFileNotFound:                    "FileNotFound",
	EResultBusy:                            "Busy",
	EResultInvalidState:                    "InvalidState",
	EResultAccessDenied:                    "AccessDenied",
	EResultTimeout:                         "Timeout",
	EResultAccountNotFound:                 "AccountNotFound",
	EResultServiceUnavailable:              "ServiceUnavailable",
	EResultPending:                         "Pending",
	EResultLimitExceeded:                   "LimitExceeded",
	EResultRevoked:                         "Revoked",
	EResultExpired:                         "Expired",
	EResultDuplicateRequest:                "DuplicateRequest",
	EResultAccountLogonDenied:              "AccountLogonDenied",
	EResultInvalidLoginAuthCode:            "InvalidLoginAuthCode",
	EResultAccountLogonDeniedNoMail:        "AccountLogonDeniedNoMail",
	EResultRateLimitExceeded:               "RateLimitExceeded",
	EResultAccountLoginDeniedNeedTwoFactor: "AccountLoginDeniedNeedTwoFactor",
	EResultAccountLoginDeniedThrottle:      "AccountLoginDeniedThrottle",
	EResultTwoFactorCodeMismatch:           "TwoFactorCodeMismatch",
	EResultTwoFactorActivationCodeMismatch: "TwoFactorActivationCodeMismatch",
}

func (r EResult) String() string {
	if name, ok := eresultNames[r]; ok {
		return name
	}
	return "EResult(" + strconv.FormatInt(int64(r), 10) + ")"
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/term"

	"github.com/vaporkit/vaporkit/auth"
)

// terminalAuthenticator satisfies guard confirmations interactively on the
// controlling terminal.
type terminalAuthenticator struct {
	in  *bufio.Reader
	out io.Writer
}

var _ auth.Authenticator = (*terminalAuthenticator)(nil)

func newTerminalAuthenticator(in io.Reader, out io.Writer) *terminalAuthenticator {
	return &terminalAuthenticator{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (a *terminalAuthenticator) GetEmailCode(_ context.Context, message string, previousWasIncorrect bool) (string, error) {
	if previousWasIncorrect {
		fmt.Fprintln(a.out, "The previous code was incorrect.")
	}
	if message != "" {
		fmt.Fprintf(a.out, "A code was sent to %s.\n", message)
	}
	return a.readLine("Enter the email code: ")
}

func (a *terminalAuthenticator) GetDeviceCode(_ context.Context, previousWasIncorrect bool) (string, error) {
	if previousWasIncorrect {
		fmt.Fprintln(a.out, "The previous code was incorrect.")
	}
	return a.readLine("Enter the code from your mobile authenticator: ")
}

func (a *terminalAuthenticator) AcceptDeviceConfirmation(_ context.Context) (bool, error) {
	answer, err := a.readLine("Confirm the login in your mobile app? [Y/n] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (a *terminalAuthenticator) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", oops.Code("INPUT_FAILED").Wrap(err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", oops.Code("INPUT_FAILED").Wrap(err)
	}
	return string(password), nil
}

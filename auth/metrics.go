// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VaporKit Contributors

package auth

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaporkit/vaporkit/steam"
)

// Metrics contains Prometheus metrics for the authentication flows.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsStarted   *prometheus.CounterVec
	Polls             *prometheus.CounterVec
	GuardCodeAttempts *prometheus.CounterVec
}

// NewMetrics creates and registers authentication metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaporkit_auth_sessions_started_total",
				Help: "Total number of begun auth sessions by flow and result",
			},
			[]string{"flow", "result"},
		),
		Polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaporkit_auth_polls_total",
				Help: "Total number of session status polls by outcome",
			},
			[]string{"outcome"},
		),
		GuardCodeAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaporkit_auth_guard_code_attempts_total",
				Help: "Total number of guard code submissions by code type and outcome",
			},
			[]string{"code_type", "outcome"},
		),
	}

	reg.MustRegister(m.SessionsStarted)
	reg.MustRegister(m.Polls)
	reg.MustRegister(m.GuardCodeAttempts)

	return m
}

func (m *Metrics) recordSessionStarted(flow string, result steam.EResult) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(flow, result.String()).Inc()
}

func (m *Metrics) recordPoll(outcome string) {
	if m == nil {
		return
	}
	m.Polls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordGuardCode(codeType steam.GuardType, outcome string) {
	if m == nil {
		return
	}
	m.GuardCodeAttempts.WithLabelValues(codeType.String(), outcome).Inc()
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/packet"
)

const (
	ioLabel     = "io"
	opLabel     = "op"
	kindLabel   = "kind"
	classLabel  = "class"
	reasonLabel = "reason"

	sentLabel     = "sent"
	receivedLabel = "received"
)

var (
	ioOpLabels      = []string{ioLabel, opLabel}
	kindClassLabels = []string{kindLabel, classLabel}
	reasonLabels    = []string{reasonLabel}
)

type Metrics struct {
	Errors  metric.CounterVec // kind + class
	Packets metric.CounterVec // io + op
	Dropped metric.CounterVec // reason
}

func NewMetrics(registerer metric.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Errors: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "number of session errors by kind and class",
			},
			kindClassLabels,
		),
		Packets: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "packets_total",
				Help:      "number of handled packets",
			},
			ioOpLabels,
		),
		Dropped: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_total",
				Help:      "number of inbound packets dropped without ending the session",
			},
			reasonLabels,
		),
	}
	return m, nil
}

// Sent updates the metrics for having sent [p].
func (m *Metrics) Sent(p packet.Packet) {
	m.packet(sentLabel, p.ID())
}

// Received updates the metrics for having read [p].
func (m *Metrics) Received(p packet.Packet) {
	m.packet(receivedLabel, p.ID())
}

func (m *Metrics) packet(io string, op packet.ID) {
	if m == nil {
		return
	}
	m.Packets.With(metric.Labels{
		ioLabel: io,
		opLabel: op.String(),
	}).Inc()
}

// Error counts err under its kind and class.
func (m *Metrics) Error(err error) {
	if m == nil {
		return
	}
	m.Errors.With(metric.Labels{
		kindLabel:  p2pnet.KindOf(err).String(),
		classLabel: p2pnet.ClassOf(err).String(),
	}).Inc()
}

func (m *Metrics) Drop(reason string) {
	if m == nil {
		return
	}
	m.Dropped.With(metric.Labels{
		reasonLabel: reason,
	}).Inc()
}

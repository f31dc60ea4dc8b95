// Copyright 2019 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.


package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vearch/vdbclient/fault"
)

var (
	// RPC metrics
	rpcDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vdbclient_rpc_duration_seconds",
			Help:    "RPC round trip duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "status"},
	)

	rpcTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vdbclient_rpc_total",
			Help: "Total number of RPC attempts",
		},
		[]string{"method", "status"},
	)

	retryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vdbclient_rpc_retries_total",
			Help: "Total number of RPC retries",
		},
		[]string{"method"},
	)

	timeoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vdbclient_timeouts_total",
			Help: "Total number of timeouts",
		},
		[]string{"operation"},
	)

	// Wait metrics
	waitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vdbclient_wait_duration_seconds",
			Help:    "Duration of waits for server side asynchronous operations",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"operation", "status"},
	)

	inflightRPCs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vdbclient_inflight_rpcs",
			Help: "Number of RPCs waiting for a response",
		},
	)
)

// Recorder records client side metrics into the default registry.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// ShortMethod strips the service prefix from a full gRPC method name.
func ShortMethod(method string) string {
	return method[strings.LastIndexByte(method, '/')+1:]
}

// RecordRPC records one RPC attempt and its outcome.
func (m *Recorder) RecordRPC(method string, err error, duration time.Duration) {
	method = ShortMethod(method)
	status := fault.CodeOf(err).String()
	rpcDuration.WithLabelValues(method, status).Observe(duration.Seconds())
	rpcTotal.WithLabelValues(method, status).Inc()
	if fault.IsTimeout(err) {
		timeoutTotal.WithLabelValues(method).Inc()
	}
}

func (m *Recorder) RecordRetry(method string) {
	retryTotal.WithLabelValues(ShortMethod(method)).Inc()
}

// RecordWait records a finished progress wait.
func (m *Recorder) RecordWait(operation string, err error, duration time.Duration) {
	waitDuration.WithLabelValues(operation, fault.CodeOf(err).String()).Observe(duration.Seconds())
	if fault.IsTimeout(err) {
		timeoutTotal.WithLabelValues(operation).Inc()
	}
}

// Begin marks an RPC in flight; the returned func marks it done.
func (m *Recorder) Begin() func() {
	inflightRPCs.Inc()
	return inflightRPCs.Dec
}

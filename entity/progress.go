// Copyright 2025 The Vearch Authors.
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

package entity

import (
	"time"
)

// Progress counts completed units of a server-side asynchronous operation.
type Progress struct {
	Total    uint64
	Finished uint64
}

// Done reports whether every unit has finished.
func (p Progress) Done() bool {
	return p.Finished >= p.Total
}

// Percent is the completion ratio scaled to [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	pct := float64(p.Finished) * 100 / float64(p.Total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

const (
	DefaultCheckTimeout  = 60 * time.Second
	DefaultCheckInterval = 500 * time.Millisecond
)

// ProgressMonitor bounds how long an operation waits for the server to finish
// and receives each intermediate progress snapshot. A zero Timeout means do
// not wait at all.
type ProgressMonitor struct {
	Timeout    time.Duration
	Interval   time.Duration
	OnProgress func(Progress)
}

// DefaultProgressMonitor waits up to a minute, polling twice a second.
func DefaultProgressMonitor() ProgressMonitor {
	return ProgressMonitor{Timeout: DefaultCheckTimeout, Interval: DefaultCheckInterval}
}

// NoWait returns immediately after the request is accepted.
func NoWait() ProgressMonitor {
	return ProgressMonitor{Timeout: 0, Interval: DefaultCheckInterval}
}

// Forever waits until the operation finishes, fails, or the context ends.
func Forever() ProgressMonitor {
	return ProgressMonitor{Timeout: time.Duration(1<<63 - 1), Interval: DefaultCheckInterval}
}

// WithProgress returns a copy with the callback set.
func (m ProgressMonitor) WithProgress(fn func(Progress)) ProgressMonitor {
	m.OnProgress = fn
	return m
}

// Report invokes the callback when one is set.
func (m ProgressMonitor) Report(p Progress) {
	if m.OnProgress != nil {
		m.OnProgress(p)
	}
}

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

// Package poll waits for a server-side asynchronous operation by probing its
// progress at a fixed interval.
package poll

import (
	"context"
	"time"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pkg/log"
)

// Probe fetches one progress snapshot. An error ends the wait.
type Probe func(ctx context.Context) (entity.Progress, error)

// Wait probes until the reported progress is done, the monitor's timeout
// elapses, the probe fails, or ctx ends. A zero timeout returns at once
// without probing.
func Wait(ctx context.Context, what string, m entity.ProgressMonitor, probe Probe) error {
	if m.Timeout <= 0 {
		return nil
	}
	interval := m.Interval
	if interval <= 0 {
		interval = entity.DefaultCheckInterval
	}

	begin := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		remaining := m.Timeout - time.Since(begin)
		last := false
		wait := interval
		if remaining <= interval {
			wait = remaining
			last = true
		}
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				return fault.FromContext(ctx, what+" wait interrupted")
			}
		}

		progress, err := probe(ctx)
		if err != nil {
			return err
		}
		m.Report(progress)
		if log.IsDebugEnabled() {
			log.Debugf("%s progress %d/%d", what, progress.Finished, progress.Total)
		}
		if progress.Done() {
			return nil
		}
		if last {
			return fault.Newf(fault.Timeout, "%s not finished in %s, progress %d/%d",
				what, m.Timeout, progress.Finished, progress.Total)
		}
	}
}

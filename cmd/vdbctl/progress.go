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

package main

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/vearch/vdbclient/entity"
)

var (
	wait    time.Duration
	noWait  bool
	showBar bool
)

// waitBar renders the progress snapshots of one wait on a terminal.
type waitBar struct {
	w    io.Writer
	desc string
	bar  *progressbar.ProgressBar
	max  int64
}

func newWaitBar(w io.Writer, desc string) *waitBar {
	return &waitBar{w: w, desc: desc}
}

func (b *waitBar) report(p entity.Progress) {
	total := int64(p.Total)
	if total <= 0 {
		total = 1
	}
	if b.bar == nil {
		b.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(b.w),
			progressbar.OptionSetDescription(b.desc),
			progressbar.OptionSetWidth(32),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		b.max = total
	} else if total != b.max {
		b.bar.ChangeMax64(total)
		b.max = total
	}
	_ = b.bar.Set64(min(int64(p.Finished), total))
}

func (b *waitBar) finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}

// monitor builds the wait for a command from the --wait and --no-wait flags.
// The returned func must be called once the operation returns.
func monitor(desc string) (entity.ProgressMonitor, func()) {
	if noWait {
		return entity.NoWait(), func() {}
	}
	m := entity.DefaultProgressMonitor()
	if wait > 0 {
		m.Timeout = wait
	}
	if !showBar || !term.IsTerminal(int(os.Stderr.Fd())) {
		return m, func() {}
	}
	b := newWaitBar(os.Stderr, desc)
	return m.WithProgress(b.report), b.finish
}

// addWaitFlags registers the wait flags on commands that block on the server.
func addWaitFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&wait, "wait", 0, "how long to wait for completion, 0 means the default minute")
	fs.BoolVar(&noWait, "no-wait", false, "return as soon as the request is accepted")
	fs.BoolVar(&showBar, "progress", true, "show a progress bar on a terminal")
}

// Copyright 2019 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaeger "github.com/uber/jaeger-client-go"
	config "github.com/uber/jaeger-client-go/config"

	vconfig "github.com/vearch/vdbclient/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger installs a Jaeger tracer as the global opentracing tracer. When
// no agent is configured the global no-op tracer stays in place.
func InitJaeger(service string, c vconfig.TracerCfg) (io.Closer, error) {
	if !c.Enabled() {
		return nopCloser{}, nil
	}
	cfg := &config.Configuration{
		ServiceName: service,
		Sampler: &config.SamplerConfig{
			Type:  c.SampleType,
			Param: c.SampleParam,
		},
		Reporter: &config.ReporterConfig{
			LocalAgentHostPort:         c.Host,
			LogSpans:                   false,
			DisableAttemptReconnecting: false,
			AttemptReconnectInterval:   1 * time.Minute,
		},
	}
	closer, err := cfg.InitGlobalTracer(service, config.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, errors.Wrap(err, "cannot init Jaeger")
	}
	return closer, nil
}

// Enabled reports whether a real tracer has been installed.
func Enabled() bool {
	return opentracing.IsGlobalTracerRegistered()
}

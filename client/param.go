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


package client

import (
	"time"

	"google.golang.org/grpc"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/retry"
	"github.com/vearch/vdbclient/internal/session"
)

// ConnectParam describes how to reach and authenticate with the server.
type ConnectParam struct {
	// Address is host:port or a URI such as https://host:443/dbname.
	Address  string
	Username string
	Password string
	// Token takes precedence over Username and Password.
	Token  string
	DBName string

	TLS        bool
	CACert     string
	ClientCert string
	ClientKey  string
	ServerName string

	ConnectTimeout        time.Duration
	RPCTimeout            time.Duration
	KeepaliveTime         time.Duration
	KeepaliveTimeout      time.Duration
	KeepaliveWithoutCalls bool

	// MaxRPS caps outgoing RPC attempts per second; 0 means unlimited.
	MaxRPS float64
	Burst  int
}

func NewConnectParam(address string) ConnectParam {
	return ConnectParam{
		Address:          address,
		ConnectTimeout:   10 * time.Second,
		KeepaliveTime:    10 * time.Second,
		KeepaliveTimeout: 20 * time.Second,
	}
}

func (p ConnectParam) WithAuthorizations(username, password string) ConnectParam {
	p.Username, p.Password = username, password
	return p
}

func (p ConnectParam) WithToken(token string) ConnectParam {
	p.Token = token
	return p
}

func (p ConnectParam) WithDBName(db string) ConnectParam {
	p.DBName = db
	return p
}

func (p ConnectParam) WithTLS(caCert, clientCert, clientKey, serverName string) ConnectParam {
	p.TLS = true
	p.CACert, p.ClientCert, p.ClientKey, p.ServerName = caCert, clientCert, clientKey, serverName
	return p
}

func (p ConnectParam) WithRPCTimeout(d time.Duration) ConnectParam {
	p.RPCTimeout = d
	return p
}

// RetryParam controls how a failed RPC is retried.
type RetryParam struct {
	MaxRetry          int
	MaxRetryTimeout   time.Duration
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	RetryOnRateLimit  bool
}

func DefaultRetryParam() RetryParam {
	p := retry.DefaultPolicy()
	return RetryParam{
		MaxRetry:          p.MaxAttempts,
		MaxRetryTimeout:   p.MaxTimeout,
		InitialBackoff:    p.InitialBackoff,
		MaxBackoff:        p.MaxBackoff,
		BackoffMultiplier: p.Multiplier,
		RetryOnRateLimit:  p.RetryOnRateLimit,
	}
}

func (p RetryParam) policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:      p.MaxRetry,
		MaxTimeout:       p.MaxRetryTimeout,
		InitialBackoff:   p.InitialBackoff,
		MaxBackoff:       p.MaxBackoff,
		Multiplier:       p.BackoffMultiplier,
		RetryOnRateLimit: p.RetryOnRateLimit,
	}
}

func (p ConnectParam) sessionConfig(r RetryParam, version string) session.Config {
	return session.Config{
		Address:               p.Address,
		Username:              p.Username,
		Password:              p.Password,
		Token:                 p.Token,
		DBName:                p.DBName,
		TLS:                   p.TLS,
		CACert:                p.CACert,
		ClientCert:            p.ClientCert,
		ClientKey:             p.ClientKey,
		ServerName:            p.ServerName,
		ConnectTimeout:        p.ConnectTimeout,
		RPCTimeout:            p.RPCTimeout,
		KeepaliveTime:         p.KeepaliveTime,
		KeepaliveTimeout:      p.KeepaliveTimeout,
		KeepaliveWithoutCalls: p.KeepaliveWithoutCalls,
		MaxRPS:                p.MaxRPS,
		Burst:                 p.Burst,
		Retry:                 r.policy(),
		SDKVersion:            version,
	}
}

// Logger receives the client's log output.
type Logger = log.Log

const defaultSchemaCacheTTL = 5 * time.Minute

type options struct {
	retry    RetryParam
	logger   Logger
	cacheTTL time.Duration
	dialOpts []grpc.DialOption
	monitor  entity.ProgressMonitor
}

func defaultOptions() options {
	return options{
		retry:    DefaultRetryParam(),
		cacheTTL: defaultSchemaCacheTTL,
		monitor:  entity.DefaultProgressMonitor(),
	}
}

type Option func(*options)

func WithRetry(p RetryParam) Option {
	return func(o *options) { o.retry = p }
}

// WithLogger installs l as the process wide log sink.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSchemaCacheTTL sets how long collection schemas are cached.
func WithSchemaCacheTTL(d time.Duration) Option {
	return func(o *options) { o.cacheTTL = d }
}

func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOpts = append(o.dialOpts, opts...) }
}

// WithDefaultMonitor sets the wait used by load, index and flush calls that
// pass no monitor of their own.
func WithDefaultMonitor(m entity.ProgressMonitor) Option {
	return func(o *options) { o.monitor = m }
}

// CallOption adjusts a single operation.
type CallOption func(*callOptions)

type callOptions struct {
	db      string
	monitor *entity.ProgressMonitor
}

// WithDB targets another database than the session's current one.
func WithDB(db string) CallOption {
	return func(o *callOptions) { o.db = db }
}

// WithMonitor sets how long and how often to wait for the server.
func WithMonitor(m entity.ProgressMonitor) CallOption {
	return func(o *callOptions) { o.monitor = &m }
}

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


package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/vearch/vdbclient/internal/retry"
)

var (
	buildVersion = "0.0"
	buildTime    = "0"
	commitID     = "xxxxx"
)

// SetConfigVersion set the version, time and commit id of build
func SetConfigVersion(bv, bt, ci string) {
	if bv != "" {
		buildVersion = bv
	}
	if bt != "" {
		buildTime = bt
	}
	if ci != "" {
		commitID = ci
	}
}

func GetBuildVersion() string {
	return buildVersion
}
func GetBuildTime() string {
	return buildTime
}
func GetCommitID() string {
	return commitID
}

const DefaultAddress = "localhost:19530"

// ClientConfig is the file form of the client settings. Durations are in
// milliseconds unless the key says otherwise.
type ClientConfig struct {
	Server ServerCfg `toml:"server" yaml:"server" json:"server"`
	Retry  RetryCfg  `toml:"retry" yaml:"retry" json:"retry"`
	Log    LogCfg    `toml:"log" yaml:"log" json:"log"`
	Tracer TracerCfg `toml:"tracer" yaml:"tracer" json:"tracer"`
	Limits LimitsCfg `toml:"limits" yaml:"limits" json:"limits"`
}

type ServerCfg struct {
	Address          string `toml:"address,omitempty" yaml:"address,omitempty" json:"address"`
	Username         string `toml:"username,omitempty" yaml:"username,omitempty" json:"username"`
	Password         string `toml:"password,omitempty" yaml:"password,omitempty" json:"password"`
	Token            string `toml:"token,omitempty" yaml:"token,omitempty" json:"token"`
	DBName           string `toml:"db_name,omitempty" yaml:"db_name,omitempty" json:"db_name"`
	TLS              bool   `toml:"tls,omitempty" yaml:"tls,omitempty" json:"tls"`
	CACert           string `toml:"ca_cert,omitempty" yaml:"ca_cert,omitempty" json:"ca_cert"`
	ClientCert       string `toml:"client_cert,omitempty" yaml:"client_cert,omitempty" json:"client_cert"`
	ClientKey        string `toml:"client_key,omitempty" yaml:"client_key,omitempty" json:"client_key"`
	ServerName       string `toml:"server_name,omitempty" yaml:"server_name,omitempty" json:"server_name"`
	ConnectTimeout   int    `toml:"connect_timeout" yaml:"connect_timeout" json:"connect_timeout"` //ms
	RpcTimeout       int    `toml:"rpc_timeout" yaml:"rpc_timeout" json:"rpc_timeout"`             //ms
	KeepaliveTime    int    `toml:"keepalive_time" yaml:"keepalive_time" json:"keepalive_time"`    //ms
	KeepaliveTimeout int    `toml:"keepalive_timeout" yaml:"keepalive_timeout" json:"keepalive_timeout"`
}

type RetryCfg struct {
	MaxRetry         int     `toml:"max_retry" yaml:"max_retry" json:"max_retry"`
	MaxRetryTimeout  int     `toml:"max_retry_timeout" yaml:"max_retry_timeout" json:"max_retry_timeout"` //ms
	InitialBackoff   int     `toml:"initial_backoff" yaml:"initial_backoff" json:"initial_backoff"`       //ms
	MaxBackoff       int     `toml:"max_backoff" yaml:"max_backoff" json:"max_backoff"`                   //ms
	BackoffMultiple  float64 `toml:"backoff_multiple" yaml:"backoff_multiple" json:"backoff_multiple"`
	RetryOnRateLimit bool    `toml:"retry_on_rate_limit" yaml:"retry_on_rate_limit" json:"retry_on_rate_limit"`
}

type LogCfg struct {
	Level string `toml:"level,omitempty" yaml:"level,omitempty" json:"level"`
	File  string `toml:"file,omitempty" yaml:"file,omitempty" json:"file"`
}

type TracerCfg struct {
	Host        string  `toml:"host,omitempty" yaml:"host,omitempty" json:"host"`
	SampleType  string  `toml:"sample_type,omitempty" yaml:"sample_type,omitempty" json:"sample_type"`
	SampleParam float64 `toml:"sample_param,omitempty" yaml:"sample_param,omitempty" json:"sample_param"`
}

// Enabled reports whether a tracing agent is configured.
func (t TracerCfg) Enabled() bool {
	return t.Host != ""
}

type LimitsCfg struct {
	MaxRPS         float64 `toml:"max_rps" yaml:"max_rps" json:"max_rps"`
	Burst          int     `toml:"burst" yaml:"burst" json:"burst"`
	SchemaCacheTTL int     `toml:"schema_cache_ttl" yaml:"schema_cache_ttl" json:"schema_cache_ttl"` //s
}

// Default returns the settings used when no file is given.
func Default() *ClientConfig {
	p := retry.DefaultPolicy()
	return &ClientConfig{
		Server: ServerCfg{
			Address:          DefaultAddress,
			ConnectTimeout:   10000,
			KeepaliveTime:    10000,
			KeepaliveTimeout: 20000,
		},
		Retry: RetryCfg{
			MaxRetry:         p.MaxAttempts,
			MaxRetryTimeout:  int(p.MaxTimeout / time.Millisecond),
			InitialBackoff:   int(p.InitialBackoff / time.Millisecond),
			MaxBackoff:       int(p.MaxBackoff / time.Millisecond),
			BackoffMultiple:  p.Multiplier,
			RetryOnRateLimit: p.RetryOnRateLimit,
		},
		Log:    LogCfg{Level: "info"},
		Tracer: TracerCfg{SampleType: "const", SampleParam: 1},
		Limits: LimitsCfg{SchemaCacheTTL: 300},
	}
}

// Load reads a config file over the defaults. Files ending in .yaml or .yml
// are YAML, everything else is TOML.
func Load(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		_, err = toml.Decode(string(data), c)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return c, nil
}

// ApplyEnv overrides connection settings from VDB_* environment variables.
func (c *ClientConfig) ApplyEnv() error {
	str := map[string]*string{
		"VDB_ADDRESS":  &c.Server.Address,
		"VDB_USERNAME": &c.Server.Username,
		"VDB_PASSWORD": &c.Server.Password,
		"VDB_TOKEN":    &c.Server.Token,
		"VDB_DB_NAME":  &c.Server.DBName,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("VDB_RPC_TIMEOUT"); ok {
		ms, err := cast.ToIntE(v)
		if err != nil {
			return errors.Wrap(err, "VDB_RPC_TIMEOUT")
		}
		c.Server.RpcTimeout = ms
	}
	if v, ok := os.LookupEnv("VDB_MAX_RPS"); ok {
		rps, err := cast.ToFloat64E(v)
		if err != nil {
			return errors.Wrap(err, "VDB_MAX_RPS")
		}
		c.Limits.MaxRPS = rps
	}
	return nil
}

func (c *ClientConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Address) == "":
		return errors.New("server.address is required")
	case c.Server.ConnectTimeout < 0 || c.Server.RpcTimeout < 0:
		return errors.New("server timeouts must not be negative")
	case c.Server.TLS && (c.Server.ClientCert == "") != (c.Server.ClientKey == ""):
		return errors.New("server.client_cert and server.client_key must be set together")
	case c.Retry.MaxRetry < 0 || c.Retry.MaxRetryTimeout < 0:
		return errors.New("retry limits must not be negative")
	case c.Retry.InitialBackoff < 0 || c.Retry.MaxBackoff < c.Retry.InitialBackoff:
		return errors.Errorf("retry backoff range [%d, %d] is invalid", c.Retry.InitialBackoff, c.Retry.MaxBackoff)
	case c.Retry.BackoffMultiple < 1:
		return errors.Errorf("retry.backoff_multiple %v must be at least 1", c.Retry.BackoffMultiple)
	case c.Limits.MaxRPS < 0 || c.Limits.Burst < 0:
		return errors.New("limits must not be negative")
	}
	return nil
}

// RetryPolicy converts the retry section.
func (c *ClientConfig) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:      c.Retry.MaxRetry,
		MaxTimeout:       ms(c.Retry.MaxRetryTimeout),
		InitialBackoff:   ms(c.Retry.InitialBackoff),
		MaxBackoff:       ms(c.Retry.MaxBackoff),
		Multiplier:       c.Retry.BackoffMultiple,
		RetryOnRateLimit: c.Retry.RetryOnRateLimit,
	}
}

func (s ServerCfg) ConnectTimeoutDuration() time.Duration   { return ms(s.ConnectTimeout) }
func (s ServerCfg) RpcTimeoutDuration() time.Duration       { return ms(s.RpcTimeout) }
func (s ServerCfg) KeepaliveTimeDuration() time.Duration    { return ms(s.KeepaliveTime) }
func (s ServerCfg) KeepaliveTimeoutDuration() time.Duration { return ms(s.KeepaliveTimeout) }

func (l LimitsCfg) SchemaCacheTTLDuration() time.Duration {
	return time.Duration(l.SchemaCacheTTL) * time.Second
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

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
	"context"
	"fmt"
	"io"
	golog "log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vearch/vdbclient/client"
	"github.com/vearch/vdbclient/internal/config"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/pkg/tracer"
)

const serviceName = "vdbctl"

var (
	cfgFile  string
	address  string
	database string
	logLevel string
	timeout  time.Duration

	cfg          *config.ClientConfig
	tracerCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "vdbctl",
	Short: "Command line client for the vector database",
	Long: `vdbctl talks to a vector database server over gRPC.

Connection settings come from a TOML or YAML config file, VDB_* environment
variables and the flags below, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerCloser != nil {
			tracerCloser.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client and server versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("vdbctl %s (build %s, commit %s)\n", config.GetBuildVersion(), config.GetBuildTime(), config.GetCommitID())
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			v, err := c.GetServerVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("server %s\n", v)
			return nil
		})
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			healthy, reasons, err := c.CheckHealth(ctx)
			if err != nil {
				return err
			}
			if healthy {
				fmt.Println("healthy")
				return nil
			}
			fmt.Println("unhealthy")
			for _, r := range reasons {
				fmt.Printf("  %s\n", r)
			}
			return errors.New("server is unhealthy")
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	addConnectionFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
}

func addConnectionFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "config file (TOML, or YAML by .yaml/.yml extension)")
	fs.StringVar(&address, "address", "", "server address, overrides server.address")
	fs.StringVar(&database, "db", "", "database name, overrides server.db_name")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.DurationVar(&timeout, "timeout", 0, "overall command deadline, 0 means none")
}

func initConfig() {
	var err error
	if cfg, err = loadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	log.Regist(newLogger(cfg.Log))
	if cfgFile != "" {
		log.Infof("The Config File Is: %v", cfgFile)
	}
	if tracerCloser, err = tracer.InitJaeger(serviceName, cfg.Tracer); err != nil {
		log.Warnf("tracer disabled: %v", err)
	}
}

// loadConfig merges the config file, the environment and the flags.
func loadConfig() (*config.ClientConfig, error) {
	c := config.Default()
	if cfgFile != "" {
		var err error
		if c, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, errors.Wrap(err, "environment")
	}
	if address != "" {
		c.Server.Address = address
	}
	if database != "" {
		c.Server.DBName = database
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(c config.LogCfg) log.Log {
	var w io.Writer = os.Stderr
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			w = f
		}
	}
	return log.NewGoLog(golog.New(w, "", golog.LstdFlags), log.ParseLevel(c.Level))
}

func connectParam(c *config.ClientConfig) client.ConnectParam {
	s := c.Server
	p := client.NewConnectParam(s.Address)
	if s.Token != "" {
		p = p.WithToken(s.Token)
	} else if s.Username != "" {
		p = p.WithAuthorizations(s.Username, s.Password)
	}
	p = p.WithDBName(s.DBName)
	if s.TLS {
		p = p.WithTLS(s.CACert, s.ClientCert, s.ClientKey, s.ServerName)
	}
	if s.ConnectTimeout > 0 {
		p.ConnectTimeout = s.ConnectTimeoutDuration()
	}
	if s.KeepaliveTime > 0 {
		p.KeepaliveTime = s.KeepaliveTimeDuration()
	}
	if s.KeepaliveTimeout > 0 {
		p.KeepaliveTimeout = s.KeepaliveTimeoutDuration()
	}
	p.RPCTimeout = s.RpcTimeoutDuration()
	p.MaxRPS = c.Limits.MaxRPS
	p.Burst = c.Limits.Burst
	return p
}

func retryParam(c *config.ClientConfig) client.RetryParam {
	p := c.RetryPolicy()
	return client.RetryParam{
		MaxRetry:          p.MaxAttempts,
		MaxRetryTimeout:   p.MaxTimeout,
		InitialBackoff:    p.InitialBackoff,
		MaxBackoff:        p.MaxBackoff,
		BackoffMultiplier: p.Multiplier,
		RetryOnRateLimit:  p.RetryOnRateLimit,
	}
}

// withClient connects, runs fn and closes the connection.
func withClient(ctx context.Context, fn func(context.Context, *client.Client) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	opts := []client.Option{client.WithRetry(retryParam(cfg))}
	if ttl := cfg.Limits.SchemaCacheTTLDuration(); ttl > 0 {
		opts = append(opts, client.WithSchemaCacheTTL(ttl))
	}
	c, err := client.New(ctx, connectParam(cfg), opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

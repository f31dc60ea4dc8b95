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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vearch/vdbclient/client"
	"github.com/vearch/vdbclient/entity"
)

var (
	indexName   string
	indexType   string
	metricType  string
	indexParams []string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect indexes",
}

var indexCreateCmd = &cobra.Command{
	Use:   "create <collection> <field>",
	Short: "Create an index and wait until it is built",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := buildIndexDesc(args[1])
		if err != nil {
			return err
		}
		m, done := monitor("indexing " + args[0] + "." + args[1])
		defer done()
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			return c.CreateIndex(ctx, args[0], idx, client.WithMonitor(m))
		})
	},
}

var indexDescribeCmd = &cobra.Command{
	Use:   "describe <collection> [field]",
	Short: "Show the indexes of a collection",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := ""
		if len(args) > 1 {
			field = args[1]
		}
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			descs, err := c.DescribeIndex(ctx, args[0], field)
			if err != nil {
				return err
			}
			for _, d := range descs {
				printIndex(d)
			}
			return nil
		})
	},
}

func init() {
	indexCreateCmd.Flags().StringVar(&indexName, "name", "", "index name, defaults to the server's choice")
	indexCreateCmd.Flags().StringVar(&indexType, "type", string(entity.IndexAutoIndex), "index type, e.g. HNSW or IVF_FLAT")
	indexCreateCmd.Flags().StringVar(&metricType, "metric", "", "metric type, e.g. L2, IP or COSINE")
	indexCreateCmd.Flags().StringArrayVar(&indexParams, "param", nil, "extra index parameter as key=value, repeatable")
	addWaitFlags(indexCreateCmd.Flags())

	indexCmd.AddCommand(indexCreateCmd, indexDescribeCmd)
	rootCmd.AddCommand(indexCmd)
}

func buildIndexDesc(field string) (*entity.IndexDesc, error) {
	idx := entity.NewIndexDesc(field, indexName, entity.IndexType(strings.ToUpper(indexType)), entity.MetricType(strings.ToUpper(metricType)))
	for _, kv := range indexParams {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Errorf("index param %q is not key=value", kv)
		}
		idx.WithParam(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return idx, nil
}

func printIndex(d entity.IndexDesc) {
	fmt.Printf("%s on %s\n", d.IndexName, d.FieldName)
	fmt.Printf("  type:   %s\n", d.IndexType)
	if d.MetricType != entity.MetricDefault {
		fmt.Printf("  metric: %s\n", d.MetricType)
	}
	fmt.Printf("  state:  %s\n", d.State)
	if d.FailReason != "" {
		fmt.Printf("  reason: %s\n", d.FailReason)
	}
	fmt.Printf("  rows:   %d/%d indexed, %d pending\n", d.IndexedRows, d.TotalRows, d.PendingRows)
	keys := maps.Keys(d.Params)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("  %s=%s\n", k, d.Params[k])
	}
}

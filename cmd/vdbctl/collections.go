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

	"github.com/spf13/cobra"

	"github.com/vearch/vdbclient/client"
	"github.com/vearch/vdbclient/entity"
)

var replicas int32

var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"collection", "coll"},
	Short:   "Inspect and manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list [name...]",
	Short: "List collections and their load percentage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			infos, err := c.ListCollections(ctx, args)
			if err != nil {
				return err
			}
			fmt.Printf("%-32s %-20s %s\n", "NAME", "ID", "LOADED")
			for _, info := range infos {
				fmt.Printf("%-32s %-20d %d%%\n", info.Name, info.ID, info.InMemoryPercentage)
			}
			return nil
		})
	},
}

var collectionsDescribeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show a collection's schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			desc, err := c.DescribeCollection(ctx, args[0])
			if err != nil {
				return err
			}
			printCollection(desc)
			return nil
		})
	},
}

var collectionsLoadCmd = &cobra.Command{
	Use:   "load <name> [partition...]",
	Short: "Load a collection or some of its partitions into memory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, done := monitor("loading " + args[0])
		defer done()
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			var err error
			if len(args) > 1 {
				err = c.LoadPartitions(ctx, args[0], args[1:], replicas, client.WithMonitor(m))
			} else {
				err = c.LoadCollection(ctx, args[0], replicas, client.WithMonitor(m))
			}
			if err != nil {
				return err
			}
			state, err := c.GetLoadState(ctx, args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", args[0], state)
			return nil
		})
	},
}

var collectionsReleaseCmd = &cobra.Command{
	Use:   "release <name> [partition...]",
	Short: "Release a collection or some of its partitions from memory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			if len(args) > 1 {
				return c.ReleasePartitions(ctx, args[0], args[1:])
			}
			return c.ReleaseCollection(ctx, args[0])
		})
	},
}

var collectionsFlushCmd = &cobra.Command{
	Use:   "flush <name...>",
	Short: "Seal growing segments and wait until they are persisted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, done := monitor("flushing")
		defer done()
		return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
			return c.Flush(ctx, args, client.WithMonitor(m))
		})
	},
}

func init() {
	collectionsLoadCmd.Flags().Int32Var(&replicas, "replicas", 1, "number of in-memory replicas")
	addWaitFlags(collectionsLoadCmd.Flags())
	addWaitFlags(collectionsFlushCmd.Flags())

	collectionsCmd.AddCommand(collectionsListCmd, collectionsDescribeCmd, collectionsLoadCmd,
		collectionsReleaseCmd, collectionsFlushCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func printCollection(desc *entity.CollectionDesc) {
	s := desc.Schema
	fmt.Printf("name:        %s\n", s.Name)
	fmt.Printf("id:          %d\n", desc.ID)
	fmt.Printf("database:    %s\n", desc.DBName)
	fmt.Printf("shards:      %d\n", desc.ShardsNum)
	if len(desc.Aliases) > 0 {
		fmt.Printf("aliases:     %s\n", strings.Join(desc.Aliases, ", "))
	}
	if s.Description != "" {
		fmt.Printf("description: %s\n", s.Description)
	}
	fmt.Println("fields:")
	for _, f := range s.Fields {
		fmt.Printf("  %s\n", fieldLine(f))
	}
}

func fieldLine(f *entity.FieldSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %s", f.Name, f.DataType)
	if f.ElementType != entity.DataTypeNone {
		fmt.Fprintf(&b, "<%s>", f.ElementType)
	}
	if dim, ok := f.TypeParams[entity.TypeParamDim]; ok {
		fmt.Fprintf(&b, " dim=%s", dim)
	}
	if maxLen, ok := f.TypeParams[entity.TypeParamMaxLength]; ok {
		fmt.Fprintf(&b, " max_length=%s", maxLen)
	}
	var flags []string
	if f.PrimaryKey {
		flags = append(flags, "primary")
	}
	if f.AutoID {
		flags = append(flags, "auto_id")
	}
	if f.PartitionKey {
		flags = append(flags, "partition_key")
	}
	if f.Nullable {
		flags = append(flags, "nullable")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(flags, ","))
	}
	return b.String()
}

// Copyright 2019 Intel Corporation. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	goflag "flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sepkernel/colorer/pkg/coloring"
	colormetrics "github.com/sepkernel/colorer/pkg/coloring/metrics"
	"github.com/sepkernel/colorer/pkg/fixture"
	"github.com/sepkernel/colorer/pkg/log"
	"github.com/sepkernel/colorer/pkg/version"
)

var colorctl = log.NewLogger("colorctl")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		colorctl.Fatal("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "colorctl",
		Short: "Compute and inspect cache-aware page-coloring assignments.",
	}

	// pkg/log registers its options as stdlib flags; fold those into the
	// set cobra/pflag parses so --logger-level and --logger-debug work
	// alongside the cobra subcommands.
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	root.PersistentFlags().AddFlagSet(pflag.CommandLine)

	root.AddCommand(newSolveCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newSolveCmd() *cobra.Command {
	var timeout time.Duration
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "solve <fixture.yaml>",
		Short: "Solve a page-coloring problem described by a fixture file and print the assignment.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := fixture.LoadFile(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			var cancel context.CancelFunc
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var recorder *colormetrics.Recorder
			var server *http.Server
			if metricsAddr != "" {
				recorder = colormetrics.NewRecorder()
				reg := prometheus.NewRegistry()
				if err := recorder.Register(reg); err != nil {
					return err
				}
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				server = &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						colorctl.Error("metrics server exited: %v", err)
					}
				}()
			}

			start := time.Now()
			a, err := coloring.Solve(ctx, in)
			if recorder != nil {
				recorder.Observe(time.Since(start), a, err)
			}
			if err != nil {
				return err
			}

			fmt.Print(a.Render())
			for _, d := range a.Diagnostics() {
				colorctl.Warn("%s: %s", d.Region, d.Message)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "cancel the solve after this duration (0 disables)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address while solving")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <fixture.yaml>",
		Short: "Check a fixture file for input validation errors without solving it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := fixture.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := coloring.Validate(in); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print colorctl version information.",
		RunE: func(cmd *cobra.Command, args []string) error {
			version.PrintVersionInfo()
			return nil
		},
	}
}

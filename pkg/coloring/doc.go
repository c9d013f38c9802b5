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

// Package coloring computes a cache-aware page-coloring assignment for a
// statically partitioned system.
//
// Given a hardware description (CPUs and three levels of set-associative
// cache, each with a known number of colors) and a workload description
// (executors pinned to CPUs, channels between executors, and cache
// isolation domains), Solve assigns one or more page colors to every memory
// region so that regions in different isolation domains never share a
// cache color at the levels where that can be enforced (L3 always, L2 per
// CPU), while regions allowed to interfere may do so.
//
// Solve is a pure, synchronous, single-threaded computation: it validates
// an Input and returns a fully materialized Assignment (or a typed
// SolveError). Two independent calls to Solve on disjoint inputs may
// run concurrently without any shared state.
package coloring

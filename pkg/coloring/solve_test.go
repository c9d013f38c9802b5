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

package coloring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sepkernel/colorer/pkg/idset"
)

// isolate builds the mr_cache_isolation entries assigning each of the
// given executor names to domain d, used by tests that have no channels.
func isolate(d DomainId, names ...string) []IsolationEntry {
	entries := make([]IsolationEntry, len(names))
	for i, n := range names {
		entries[i] = IsolationEntry{Region: ExecutorRegion(n), Domain: d}
	}
	return entries
}

func baseInput() Input {
	return Input{
		ExCPU: map[string]idset.Set{},
	}
}

// S1: a single kernel on a single CPU, single-color everything.
func TestS1MinimalFeasible(t *testing.T) {
	in := baseInput()
	in.Kernels = []string{"k1"}
	in.CPUs = idset.New(1)
	in.ExCPU["k1"] = idset.New(1)
	in.IsolationDomains = []DomainId{"d1"}
	in.MRIsolation = isolate("d1", "k1")
	in.Cache = CacheConfig{NL1: 1, NL2: 1, NL3: 1}

	a, err := Solve(context.Background(), in)
	require.NoError(t, err)

	colors := a.Colors(ExecutorRegion("k1"))
	require.Len(t, colors, 1)
	require.Equal(t, PageColor{L1: 1, L2: 1, L3: 1, CPU: 1}, colors[0])
	require.Equal(t, 1, a.L1Count())
	require.Equal(t, 1, a.L2Count())
	require.Equal(t, 1, a.L3Count())
}

// S2: two mutually isolated subjects sharing a CPU must get disjoint L3
// and disjoint L2 colors.
func TestS2IsolatedSubjectsShareCPU(t *testing.T) {
	in := baseInput()
	in.Subjects = []string{"s1", "s2"}
	in.CPUs = idset.New(1)
	in.ExCPU["s1"] = idset.New(1)
	in.ExCPU["s2"] = idset.New(1)
	in.IsolationDomains = []DomainId{"d1", "d2"}
	in.MRIsolation = append(isolate("d1", "s1"), isolate("d2", "s2")...)
	in.Cache = CacheConfig{NL1: 2, NL2: 4, NL3: 8}

	a, err := Solve(context.Background(), in)
	require.NoError(t, err)

	l3s1 := l3Set(a.Colors(ExecutorRegion("s1")))
	l3s2 := l3Set(a.Colors(ExecutorRegion("s2")))
	require.Empty(t, l3s1.Intersection(l3s2))

	l2s1 := l2Set(a.Colors(ExecutorRegion("s1")))
	l2s2 := l2Set(a.Colors(ExecutorRegion("s2")))
	require.Empty(t, l2s1.Intersection(l2s2))

	require.Equal(t, 8, a.L3Count())
	require.Equal(t, 4, a.L2Count())
}

// S3: a channel's memory region spans the union of both endpoints' CPUs.
func TestS3ChannelUnionCPUs(t *testing.T) {
	in := baseInput()
	in.Subjects = []string{"a", "b"}
	in.Channels = []Channel{{From: "a", To: "b"}}
	in.CPUs = idset.New(1, 2)
	in.ExCPU["a"] = idset.New(1)
	in.ExCPU["b"] = idset.New(2)
	in.IsolationDomains = []DomainId{"d1"}
	in.MRIsolation = append(isolate("d1", "a", "b"), IsolationEntry{Region: ChannelRegion("a", "b"), Domain: "d1"})
	in.Cache = CacheConfig{NL1: 2, NL2: 2, NL3: 4}

	a, err := Solve(context.Background(), in)
	require.NoError(t, err)

	ch := a.Colors(ChannelRegion("a", "b"))
	require.NotEmpty(t, ch)

	cpus := idset.New()
	for _, c := range ch {
		cpus.Add(c.CPU)
	}
	require.True(t, cpus.Has(1, 2))
}

// S4: three mutually isolated subjects on one CPU exceed the L3 budget.
func TestS4UnsatL3(t *testing.T) {
	in := baseInput()
	in.Subjects = []string{"s1", "s2", "s3"}
	in.CPUs = idset.New(1)
	in.ExCPU["s1"] = idset.New(1)
	in.ExCPU["s2"] = idset.New(1)
	in.ExCPU["s3"] = idset.New(1)
	in.IsolationDomains = []DomainId{"d1", "d2", "d3"}
	in.MRIsolation = append(append(isolate("d1", "s1"), isolate("d2", "s2")...), isolate("d3", "s3")...)
	in.Cache = CacheConfig{NL1: 1, NL2: 3, NL3: 2}

	_, err := Solve(context.Background(), in)
	require.Error(t, err)

	var se *SolveError
	require.ErrorAs(t, err, &se)
	require.Equal(t, ErrUnsatL3, se.Kind)

	var detail *UnsatL3Detail
	require.ErrorAs(t, se.Cause, &detail)
	require.Equal(t, 2, detail.NL3)
	require.Len(t, detail.Domains, 3)
}

// S5: five mutually isolated subjects on one CPU exceed the L2 budget,
// even though L3 has enough room.
func TestS5UnsatL2(t *testing.T) {
	in := baseInput()
	in.Subjects = []string{"s1", "s2", "s3", "s4", "s5"}
	in.CPUs = idset.New(1)
	for _, s := range in.Subjects {
		in.ExCPU[s] = idset.New(1)
	}
	in.IsolationDomains = []DomainId{"d1", "d2", "d3", "d4", "d5"}
	var entries []IsolationEntry
	for i, s := range in.Subjects {
		entries = append(entries, IsolationEntry{Region: ExecutorRegion(s), Domain: in.IsolationDomains[i]})
	}
	in.MRIsolation = entries
	in.Cache = CacheConfig{NL1: 1, NL2: 4, NL3: 5}

	_, err := Solve(context.Background(), in)
	require.Error(t, err)

	var se *SolveError
	require.ErrorAs(t, err, &se)
	require.Equal(t, ErrUnsatL2, se.Kind)

	var detail *UnsatL2Detail
	require.ErrorAs(t, se.Cause, &detail)
	require.Equal(t, 4, detail.NL2)
	require.Equal(t, 1, detail.CPU)
	require.Len(t, detail.Domains, 5)
}

// S6: a single, unconstrained subject can be spread across every color at
// every level.
func TestS6OptimizerUsesAllColors(t *testing.T) {
	in := baseInput()
	in.Subjects = []string{"s1"}
	in.CPUs = idset.New(1)
	in.ExCPU["s1"] = idset.New(1)
	in.IsolationDomains = []DomainId{"d1"}
	in.MRIsolation = isolate("d1", "s1")
	in.Cache = CacheConfig{NL1: 2, NL2: 4, NL3: 8}

	a, err := Solve(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 2, a.L1Count())
	require.Equal(t, 4, a.L2Count())
	require.Equal(t, 8, a.L3Count())
}

func TestSolveCancelled(t *testing.T) {
	in := baseInput()
	in.Kernels = []string{"k1"}
	in.CPUs = idset.New(1)
	in.ExCPU["k1"] = idset.New(1)
	in.IsolationDomains = []DomainId{"d1"}
	in.MRIsolation = isolate("d1", "k1")
	in.Cache = CacheConfig{NL1: 1, NL2: 1, NL3: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, in)
	require.Error(t, err)
	var se *SolveError
	require.ErrorAs(t, err, &se)
	require.Equal(t, ErrCancelled, se.Kind)
}

func TestDegenerateEmptyInput(t *testing.T) {
	in := baseInput()
	in.CPUs = idset.New()
	in.Cache = CacheConfig{NL1: 1, NL2: 1, NL3: 1}

	a, err := Solve(context.Background(), in)
	require.NoError(t, err)
	require.Empty(t, a.Regions())
	require.Equal(t, 0, a.L1Count())
}

func l3Set(colors []PageColor) idset.Set {
	s := idset.New()
	for _, c := range colors {
		s.Add(c.L3)
	}
	return s
}

func l2Set(colors []PageColor) idset.Set {
	s := idset.New()
	for _, c := range colors {
		s.Add(c.L2)
	}
	return s
}

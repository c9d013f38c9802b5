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
	"sort"

	"github.com/sepkernel/colorer/pkg/idset"
)

// partitionRoundRobin splits ids into |domains| pairwise-disjoint,
// non-empty subsets, one per domain, handing out every id in the process.
// Distributing every available id (rather than the bare minimum of one
// per domain) is what lets the R5 objective reach its maximum: any color
// id left unassigned to every domain could never appear in the final
// assignment, and would be wasted.
//
// domains must already be in canonical order; the assignment of id[i] to
// domains[i % len(domains)] keeps the split as even as the counts allow
// and is fully deterministic given that order.
func partitionRoundRobin(domains []DomainId, ids []idset.Id) map[DomainId]idset.Set {
	parts := make(map[DomainId]idset.Set, len(domains))
	for _, d := range domains {
		parts[d] = idset.New()
	}
	for i, id := range ids {
		d := domains[i%len(domains)]
		parts[d].Add(id)
	}
	return parts
}

// domainsOf returns the distinct isolation domains present among regions,
// in canonical (ascending) order.
func domainsOf(regions []*MemoryRegion) []DomainId {
	seen := make(map[DomainId]bool)
	for _, r := range regions {
		seen[r.Domain] = true
	}
	out := make([]DomainId, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// regionsOnCPU returns the regions pinned to cpu, in canonical (region id
// string) order.
func regionsOnCPU(regions []*MemoryRegion, cpu idset.Id) []*MemoryRegion {
	out := make([]*MemoryRegion, 0, len(regions))
	for _, r := range regions {
		if r.CPUs.Has(cpu) {
			out = append(out, r)
		}
	}
	return out
}

// Objective is the lexicographic R5 objective: the number of distinct
// (l1, cpu), (l2, cpu) and l3 values appearing across an assignment.
type Objective struct {
	L3Count int
	L2Count int
	L1Count int
}

// Less reports whether o is strictly worse than other under the R5
// lexicographic order (L3 first, then L2, then L1).
func (o Objective) Less(other Objective) bool {
	if o.L3Count != other.L3Count {
		return o.L3Count < other.L3Count
	}
	if o.L2Count != other.L2Count {
		return o.L2Count < other.L2Count
	}
	return o.L1Count < other.L1Count
}

// computeObjective scores an assignment.
func computeObjective(pcs map[RegionId][]PageColor) Objective {
	l1 := make(map[L1Color]struct{})
	l2 := make(map[L2Color]struct{})
	l3 := make(map[L3Color]struct{})
	for _, colors := range pcs {
		for _, c := range colors {
			l1[L1Color{ID: c.L1, CPU: c.CPU}] = struct{}{}
			l2[L2Color{ID: c.L2, CPU: c.CPU}] = struct{}{}
			l3[L3Color{ID: c.L3}] = struct{}{}
		}
	}
	return Objective{L3Count: len(l3), L2Count: len(l2), L1Count: len(l1)}
}

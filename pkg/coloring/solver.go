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

	"github.com/sepkernel/colorer/pkg/idset"
)

// solve runs the three-stage decomposition against a validated model and
// color universe: L3 colors are partitioned once across all isolation
// domains, L2 colors are partitioned independently per CPU, and L1 colors
// are then handed out freely since L1 carries no isolation constraint.
// Partitioning and spreading are fused into a single pass: every region is
// immediately given the full color pool its domain was allocated, which is
// both the simplest legal assignment and (per the partitioning in
// partitionRoundRobin) the one that maximizes the R5 objective.
func solve(ctx context.Context, model *Model, universe Universe) (map[RegionId][]PageColor, error) {
	if len(model.Regions) == 0 || len(model.CPUs) == 0 {
		return map[RegionId][]PageColor{}, nil
	}

	domains := domainsOf(model.Regions)
	if len(domains) > universe.L3.Size() {
		return nil, unsatL3Error(domains, universe.L3.Size())
	}
	l3Pools := partitionRoundRobin(domains, universe.L3.SortedMembers())

	l2Pools := make(map[idset.Id]map[DomainId]idset.Set, len(model.CPUs))
	for _, cpu := range model.CPUs {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		regionsP := regionsOnCPU(model.Regions, cpu)
		domainsP := domainsOf(regionsP)
		if len(domainsP) > universe.L2.Size() {
			return nil, unsatL2Error(int(cpu), domainsP, universe.L2.Size())
		}
		l2Pools[cpu] = partitionRoundRobin(domainsP, universe.L2.SortedMembers())
	}

	l1IDs := universe.L1.SortedMembers()
	pcs := make(map[RegionId][]PageColor, len(model.Regions))

	for _, cpu := range model.CPUs {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		for _, region := range regionsOnCPU(model.Regions, cpu) {
			l3pool := l3Pools[region.Domain].SortedMembers()
			l2pool := l2Pools[cpu][region.Domain].SortedMembers()
			for _, c := range l3pool {
				for _, b := range l2pool {
					for _, a := range l1IDs {
						pcs[region.ID] = append(pcs[region.ID], PageColor{L1: a, L2: b, L3: c, CPU: cpu})
					}
				}
			}
		}
	}

	return pcs, nil
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return cancelledError(ctx.Err())
	default:
		return nil
	}
}

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
	"fmt"
	"sort"
	"strings"
)

// Assignment is the result of a successful Solve: one or more page colors
// per memory region, plus the R5 objective counts achieved.
type Assignment struct {
	model *Model
	pcs   map[RegionId][]PageColor
	obj   Objective
}

// Colors returns the page colors assigned to region, sorted by (l3, l2,
// l1, cpu) as they would appear in Render.
func (a *Assignment) Colors(region RegionId) []PageColor {
	colors := append([]PageColor(nil), a.pcs[region]...)
	sortPageColors(colors)
	return colors
}

// Regions returns every region name in canonical (ascending) order.
func (a *Assignment) Regions() []RegionId {
	ids := make([]RegionId, len(a.model.Regions))
	for i, r := range a.model.Regions {
		ids[i] = r.ID
	}
	return ids
}

// Diagnostics returns the non-fatal observations collected while deriving
// the model this assignment was solved from.
func (a *Assignment) Diagnostics() []Diagnostic {
	return a.model.Diagnostics
}

// L1Count is the number of distinct (l1, cpu) pairs used.
func (a *Assignment) L1Count() int { return a.obj.L1Count }

// L2Count is the number of distinct (l2, cpu) pairs used.
func (a *Assignment) L2Count() int { return a.obj.L2Count }

// L3Count is the number of distinct l3 ids used.
func (a *Assignment) L3Count() int { return a.obj.L3Count }

func sortPageColors(colors []PageColor) {
	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if a.L3 != b.L3 {
			return a.L3 < b.L3
		}
		if a.L2 != b.L2 {
			return a.L2 < b.L2
		}
		if a.L1 != b.L1 {
			return a.L1 < b.L1
		}
		return a.CPU < b.CPU
	})
}

// Render produces the canonical textual form of the assignment: one line
// per region, in ascending name order, each followed by its page colors
// sorted by (l3, l2, l1, cpu).
//
//	region_name -> {(l1=a@p, l2=b@p, l3=c), ...}
func (a *Assignment) Render() string {
	var b strings.Builder
	for _, id := range a.Regions() {
		colors := a.Colors(id)
		parts := make([]string, len(colors))
		for i, c := range colors {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "%s -> {%s}\n", id, strings.Join(parts, ", "))
	}
	return b.String()
}

// String implements fmt.Stringer by rendering the assignment.
func (a *Assignment) String() string {
	return a.Render()
}

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

import "context"

// Solve computes a page-coloring assignment for in. It validates the
// input first, aggregating every problem found rather than stopping at
// the first one, then runs the three-stage decomposition described in
// solver.go's solve. ctx is checked between stages and between CPUs
// within a stage; a cancelled context yields a *SolveError of kind
// ErrCancelled instead of a partial Assignment.
func Solve(ctx context.Context, in Input) (*Assignment, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	model, err := validateAndDerive(&in)
	if err != nil {
		return nil, err
	}

	universe := BuildUniverse(model.Cache, in.CPUs)

	pcs, err := solve(ctx, model, universe)
	if err != nil {
		return nil, err
	}

	return &Assignment{model: model, pcs: pcs, obj: computeObjective(pcs)}, nil
}

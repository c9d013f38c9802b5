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

// Package log is the leveled logging colorctl and its supporting packages
// use to report diagnostics, validation warnings, and solve failures.
//
// Every caller gets its own Logger via NewLogger(source), tagged with that
// source name in every message it emits. The lowest severity passed
// through and the set of sources producing debug output are both
// controllable from the command line:
//
//	colorctl --logger-level=warn solve fixture.yaml
//	colorctl --logger-debug=fixture,coloring solve fixture.yaml
package log

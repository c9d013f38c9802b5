// Copyright 2019-2020 Intel Corporation. All Rights Reserved.
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

package log

import "fmt"

// FmtBackendName is the name of the default fmt.Print-based backend.
const FmtBackendName = "fmt"

// Backend formats and emits a single already-formatted log message.
// colorctl runs one solve and exits, so unlike a long-running daemon it
// has no need for a buffered or asynchronous backend; a Backend only
// needs to print synchronously.
type Backend interface {
	// Name returns the name of this backend.
	Name() string
	// Log emits a single log message with the given severity and source.
	Log(level Level, source, message string)
}

var levelTags = map[Level]string{
	LevelDebug: "D:",
	LevelInfo:  "I:",
	LevelWarn:  "W:",
	LevelError: "E:",
	LevelFatal: "FATAL:",
}

// fmtBackend prints log messages with fmt.Println, tagged by severity and source.
type fmtBackend struct{}

func newFmtBackend() Backend {
	return fmtBackend{}
}

func (fmtBackend) Name() string {
	return FmtBackendName
}

func (fmtBackend) Log(level Level, source, message string) {
	fmt.Println(levelTags[level], "["+source+"]", message)
}

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

import (
	"flag"
	"fmt"
	"strings"
)

const (
	// DefaultLevel is the default lowest unsuppressed severity.
	DefaultLevel = LevelInfo

	optionLevel = "logger-level"
	optionDebug = "logger-debug"
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

var namedLevels = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// levelFlag is the flag.Value bound to -logger-level; its Set also updates
// the package-level filtering state every Logger consults.
var levelFlag = DefaultLevel

// Set implements flag.Value for -logger-level.
func (l *Level) Set(value string) error {
	lv, ok := namedLevels[value]
	if !ok {
		return loggerError("unknown log level %q", value)
	}
	*l = lv
	mu.Lock()
	level = lv
	mu.Unlock()
	return nil
}

// String implements flag.Value for -logger-level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return levelNames[LevelInfo]
}

// debugFlag is the flag.Value bound to -logger-debug: a comma-separated
// list of sources to enable debug logging for, or "all"/"none".
type debugFlag struct{}

func (debugFlag) Set(value string) error {
	mu.Lock()
	defer mu.Unlock()

	switch value {
	case "all":
		debug["*"] = true
	case "none":
		for source := range debug {
			debug[source] = false
		}
	default:
		for _, source := range strings.Split(value, ",") {
			source = strings.TrimSpace(source)
			if source != "" {
				debug[source] = true
			}
		}
	}
	return nil
}

func (debugFlag) String() string {
	mu.RLock()
	defer mu.RUnlock()

	var enabled []string
	for source, on := range debug {
		if on {
			enabled = append(enabled, source)
		}
	}
	return strings.Join(enabled, ",")
}

func loggerError(format string, args ...interface{}) error {
	return fmt.Errorf("log: "+format, args...)
}

func init() {
	flag.Var(&levelFlag, optionLevel,
		"lowest severity of log message to pass through (debug, info, warn, error)")
	flag.Var(debugFlag{}, optionDebug,
		"comma-separated list of sources to enable debug logging for, or 'all'/'none'")
}

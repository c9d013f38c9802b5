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
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingBackend is a Backend that records every message instead of
// printing it, so tests can assert on exactly what a Logger emitted.
type recordingBackend struct {
	messages []string
}

func (r *recordingBackend) Name() string { return "recording" }

func (r *recordingBackend) Log(lv Level, source, message string) {
	r.messages = append(r.messages, levelTags[lv]+" ["+source+"] "+message)
}

func withRecordingBackend(t *testing.T) *recordingBackend {
	t.Helper()
	rec := &recordingBackend{}

	mu.Lock()
	prev := active
	active = rec
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		active = prev
		mu.Unlock()
	})

	return rec
}

func withLevel(t *testing.T, lv Level) {
	t.Helper()
	mu.Lock()
	prev := level
	level = lv
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		level = prev
		mu.Unlock()
	})
}

func TestLoggerTagsMessagesWithSource(t *testing.T) {
	rec := withRecordingBackend(t)
	withLevel(t, LevelInfo)

	l := NewLogger("coloring-test")
	l.Info("solved %d regions", 3)

	require.Len(t, rec.messages, 1)
	require.Contains(t, rec.messages[0], "[coloring-test]")
	require.Contains(t, rec.messages[0], "solved 3 regions")
}

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	rec := withRecordingBackend(t)
	withLevel(t, LevelError)

	l := NewLogger("coloring-test")
	l.Info("ignored")
	l.Warn("ignored too")
	l.Error("kept")

	require.Len(t, rec.messages, 1)
	require.Contains(t, rec.messages[0], "kept")
}

func TestLoggerDebugRequiresOptIn(t *testing.T) {
	rec := withRecordingBackend(t)
	withLevel(t, LevelDebug)

	l := NewLogger("coloring-debug-test")
	l.Debug("not yet enabled")
	require.Empty(t, rec.messages)

	old := l.EnableDebug(true)
	require.False(t, old)
	require.True(t, l.DebugEnabled())

	l.Debug("now enabled")
	require.Len(t, rec.messages, 1)
	require.Contains(t, rec.messages[0], "now enabled")
}

func TestNewLoggerReusesSource(t *testing.T) {
	a := NewLogger("same-source-test")
	b := NewLogger("same-source-test")
	require.Equal(t, a, b)
}

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

// Package version carries build-time version metadata for colorctl.
//
// Version and Build are overridden at link time, for instance:
//
//	LDFLAGS=-ldflags \
//	  "-X=github.com/sepkernel/colorer/pkg/version.Version=<version> \
//	   -X=github.com/sepkernel/colorer/pkg/version.Build=<build-id>"
package version

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	// Version is the colorctl version, normally set to 'git describe' output.
	Version = "unknown"
	// Build is the git SHA1 colorctl was built from.
	Build = "unknown"
)

// PrintVersionInfo prints version information about the running binary.
func PrintVersionInfo() {
	fmt.Printf("%s version information:\n", filepath.Base(os.Args[0]))
	fmt.Printf("  - version: %s\n", Version)
	fmt.Printf("  - build:   %s\n", Build)
}

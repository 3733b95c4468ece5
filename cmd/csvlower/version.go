// Copyright 2025 walteh LLC
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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// buildInfo is the subset of the embedded build metadata shown by --version
type buildInfo struct {
	version  string
	revision string
	time     string
	modified bool
}

func readBuildInfo() buildInfo {
	info := buildInfo{version: "dev"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.version = v
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.revision = setting.Value
		case "vcs.time":
			info.time = setting.Value
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}
	return info
}

// String renders e.g. "v0.1.0 (1a2b3c4d5e6f, 2025-01-02T03:04:05Z, modified) go1.23.5 linux/amd64"
func (b buildInfo) String() string {
	var details []string
	if b.revision != "" {
		rev := b.revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		details = append(details, rev)
	}
	if b.time != "" {
		details = append(details, b.time)
	}
	if b.modified {
		details = append(details, "modified")
	}

	out := b.version
	if len(details) > 0 {
		out += " (" + strings.Join(details, ", ") + ")"
	}
	return fmt.Sprintf("%s %s %s/%s", out, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

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

package status

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// 📊 FileStatus represents the current state of a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist before
	StatusModified             // File exists but content differs
	StatusUnchanged            // File exists and content matches
	StatusDeleted              // File was deleted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about one version of a file
type FileInfo struct {
	Path     string      // Path to the file
	Size     int64       // File size in bytes
	Mode     os.FileMode // File permissions
	Checksum string      // Content hash for diff detection
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 📸 Describe captures the metadata of content held for path
func Describe(path string, content []byte, mode os.FileMode) FileInfo {
	return FileInfo{
		Path:     path,
		Size:     int64(len(content)),
		Mode:     mode,
		Checksum: calculateChecksum(content),
	}
}

// Exists reports whether this info describes real content.
func (fi FileInfo) Exists() bool {
	return fi.Checksum != ""
}

// ⚖️ Compare derives the status of a file from its before and after snapshots
func Compare(before, after FileInfo) FileStatus {
	switch {
	case !before.Exists() && !after.Exists():
		return StatusUnknown
	case !before.Exists():
		return StatusNew
	case !after.Exists():
		return StatusDeleted
	case before.Checksum == after.Checksum:
		return StatusUnchanged
	default:
		return StatusModified
	}
}

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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "modified_file",
			op: FileOperation{
				Path:        "_tmp/data/supervisors 2025-26.csv",
				Column:      "email",
				Status:      "modified",
				Rows:        3,
				Lowered:     2,
				ColumnFound: true,
			},
			want: `✅ lowercased column "email" in _tmp/data/supervisors 2025-26.csv (2 of 3 rows changed, modified)`,
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:        "data.csv",
				Column:      "email",
				Status:      "unchanged",
				Rows:        0,
				ColumnFound: true,
			},
			want: `✅ lowercased column "email" in data.csv (0 of 0 rows changed, unchanged)`,
		},
		{
			name: "missing_column",
			op: FileOperation{
				Path:   "data.csv",
				Column: "email",
				Status: "unchanged",
				Rows:   4,
			},
			want: `⚠️  column "email" not found in data.csv (rows unchanged)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
			assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "should print a single line")
		})
	}
}

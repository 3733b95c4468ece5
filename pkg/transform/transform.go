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

package transform

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/csvlower/pkg/status"
	"github.com/walteh/csvlower/pkg/table"
	"github.com/walteh/csvlower/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📋 Result summarizes a completed rewrite
type Result struct {
	Path        string
	Column      string
	Rows        int  // Data rows written, header excluded
	Lowered     int  // Cells whose value changed
	ColumnFound bool // False when the header has no such column
	Before      status.FileInfo
	After       status.FileInfo
}

// Status reports whether the file bytes changed
func (r *Result) Status() status.FileStatus {
	return status.Compare(r.Before, r.After)
}

// 🔡 Transform lowercases every present value of column in the CSV file at path
// and rewrites the file in place.
//
// The file is read fully and closed before it is reopened for writing, truncated
// and rewritten. There is no temp file and no backup, so a crash mid-write can
// leave the file truncated. A column missing from the header is not an error:
// rows are written back unchanged.
func Transform(ctx context.Context, path, column string) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Str("column", column).Logger()
	ctx = logger.WithContext(ctx)

	original, mode, err := readFile(path)
	if err != nil {
		return nil, errors.Errorf("loading csv: %w", err)
	}

	tbl, err := table.Read(ctx, bytes.NewReader(original))
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	lowercaser := text.NewLowercaser()
	lowered, found := tbl.MapColumn(column, func(v string) string {
		return lowercaser.LowerText(v).Lowered
	})
	if !found {
		logger.Debug().Strs("header", tbl.Header).Msg("column not in header, rows pass through unchanged")
	}

	var buf bytes.Buffer
	if err := tbl.Write(ctx, &buf); err != nil {
		return nil, errors.Errorf("serializing csv: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("cancelled before write: %w", err)
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return nil, errors.Errorf("saving csv: %w", err)
	}

	result := &Result{
		Path:        path,
		Column:      column,
		Rows:        len(tbl.Rows),
		Lowered:     lowered,
		ColumnFound: found,
		Before:      status.Describe(path, original, mode),
		After:       status.Describe(path, buf.Bytes(), mode),
	}

	logger.Debug().
		Int("rows", result.Rows).
		Int("lowered", result.Lowered).
		Bool("column_found", result.ColumnFound).
		Stringer("status", result.Status()).
		Msg("rewrote csv")

	return result, nil
}

// 📥 readFile reads the whole file and returns its content and permissions
func readFile(path string) ([]byte, os.FileMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WithStack(&FileAccessError{Op: "read", Path: path, Err: err})
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, errors.WithStack(&FileAccessError{Op: "read", Path: path, Err: err})
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, errors.WithStack(&FileAccessError{Op: "read", Path: path, Err: err})
	}

	return content, info.Mode(), nil
}

// 📤 writeFile truncates the existing file and writes content to it
func writeFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.WithStack(&FileAccessError{Op: "write", Path: path, Err: err})
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return errors.WithStack(&FileAccessError{Op: "write", Path: path, Err: err})
	}

	if err := f.Close(); err != nil {
		return errors.WithStack(&FileAccessError{Op: "write", Path: path, Err: err})
	}

	return nil
}

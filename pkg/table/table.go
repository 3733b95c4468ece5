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

package table

import (
	"slices"
)

// span is a byte range of the source document
type span struct {
	start, end int
}

// 🧱 Cell is a single value in a row
type Cell struct {
	Value   string // Field value
	Present bool   // False when the record was too short to carry this column

	orig string // Value as parsed, used to detect edits
	raw  *span  // Encoded field text in the source, nil for cells built in memory
}

// 📄 Row is one data record, aligned with the table header
type Row []Cell

// 🏷️ Header is the ordered list of column names
type Header []string

// 📚 Table is an in-memory CSV file: header, rows and the dialect it was read with
type Table struct {
	Header Header
	Rows   []Row

	// CRLF is true when the source used \r\n line endings
	CRLF bool
	// BOM is true when the source started with a UTF-8 byte-order mark
	BOM bool

	// source document (BOM stripped) and its shape, nil for tables built in memory
	src       []byte
	srcHeader Header
	srcRows   int
}

// 🔍 ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Header {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// 🔄 MapColumn applies fn to every present cell of the named column.
// It returns the number of cells whose value changed and whether the column exists.
func (t *Table) MapColumn(name string, fn func(string) string) (int, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return 0, false
	}

	changed := 0
	for _, row := range t.Rows {
		if idx >= len(row) || !row[idx].Present {
			continue
		}
		next := fn(row[idx].Value)
		if next != row[idx].Value {
			row[idx].Value = next
			changed++
		}
	}
	return changed, true
}

// spliceable reports whether the table still has the shape it was read with,
// so that untouched bytes can be copied from the source.
func (t *Table) spliceable() bool {
	if t.src == nil || len(t.Rows) != t.srcRows || !slices.Equal(t.Header, t.srcHeader) {
		return false
	}
	for _, row := range t.Rows {
		for _, c := range row {
			if c.Present && c.raw == nil {
				return false
			}
		}
	}
	return true
}

// record flattens a row into csv fields, absent cells become empty fields
func (r Row) record(width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(r); i++ {
		if r[i].Present {
			out[i] = r[i].Value
		}
	}
	return out
}

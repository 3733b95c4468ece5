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
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const utf8BOM = "\uFEFF"

// 📥 Read parses a CSV document with a header row.
// Short records are kept with the missing trailing cells marked absent.
// The source bytes are retained so Write can reproduce untouched fields exactly.
func Read(ctx context.Context, r io.Reader) (*Table, error) {
	logger := zerolog.Ctx(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Errorf("reading csv: %w", err)
	}

	t := &Table{}
	if bytes.HasPrefix(data, []byte(utf8BOM)) {
		data = data[len(utf8BOM):]
		t.BOM = true
	}
	if nl := bytes.IndexByte(data, '\n'); nl > 0 && data[nl-1] == '\r' {
		t.CRLF = true
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.WithStack(&ParseError{Line: 1, Err: ErrMissingHeader})
	}
	if err != nil {
		return nil, errors.Errorf("reading header: %w", toParseError(err))
	}
	t.Header = Header(header)

	lines := lineStarts(data)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading row %d: %w", len(t.Rows)+1, toParseError(err))
		}
		if len(record) > len(t.Header) {
			line, _ := reader.FieldPos(0)
			return nil, errors.WithStack(&ParseError{Line: line, Err: ErrRowTooLong})
		}

		end := recordEnd(data, int(reader.InputOffset()))
		row := make(Row, len(t.Header))
		for i, v := range record {
			line, col := reader.FieldPos(i)
			s := &span{start: lines[line-1] + col - 1, end: end}
			if i+1 < len(record) {
				nextLine, nextCol := reader.FieldPos(i + 1)
				s.end = lines[nextLine-1] + nextCol - 2 // drop the comma
			}
			row[i] = Cell{Value: v, Present: true, orig: v, raw: s}
		}
		t.Rows = append(t.Rows, row)
	}

	t.src = data
	t.srcHeader = slices.Clone(t.Header)
	t.srcRows = len(t.Rows)

	logger.Debug().
		Int("columns", len(t.Header)).
		Int("rows", len(t.Rows)).
		Bool("crlf", t.CRLF).
		Bool("bom", t.BOM).
		Msg("parsed csv")

	return t, nil
}

// 📤 Write serializes the table using the header order it was read with.
//
// A table that still has the shape it was read with is written back byte for
// byte, with only the edited cells re-encoded. Anything else is encoded from
// scratch with absent cells as empty fields.
func (t *Table) Write(ctx context.Context, w io.Writer) error {
	if t.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return errors.Errorf("writing byte-order mark: %w", err)
		}
	}

	if t.spliceable() {
		edited, err := t.writeSpliced(w)
		if err != nil {
			return err
		}
		zerolog.Ctx(ctx).Debug().Int("rows", len(t.Rows)).Int("edited", edited).Msg("wrote csv from source")
		return nil
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = t.CRLF

	if err := writer.Write(t.Header); err != nil {
		return errors.Errorf("writing header: %w", err)
	}
	width := len(t.Header)
	for i, row := range t.Rows {
		if err := writer.Write(row.record(width)); err != nil {
			return errors.Errorf("writing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Errorf("flushing csv: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("rows", len(t.Rows)).Msg("wrote csv")
	return nil
}

// writeSpliced copies the source, replacing the text of edited cells
func (t *Table) writeSpliced(w io.Writer) (int, error) {
	var out bytes.Buffer
	out.Grow(len(t.src))

	edited, last := 0, 0
	for i, row := range t.Rows {
		for _, c := range row {
			if !c.Present || c.Value == c.orig {
				continue
			}
			raw := t.src[c.raw.start:c.raw.end]
			enc, err := encodeField(c.Value, raw)
			if err != nil {
				return 0, errors.Errorf("encoding row %d: %w", i+1, err)
			}
			out.Write(t.src[last:c.raw.start])
			out.WriteString(enc)
			last = c.raw.end
			edited++
		}
	}
	out.Write(t.src[last:])

	if _, err := w.Write(out.Bytes()); err != nil {
		return 0, errors.Errorf("writing csv: %w", err)
	}
	return edited, nil
}

// encodeField encodes value the way raw was encoded: quoted stays quoted and
// embedded line breaks keep the ending they had.
func encodeField(value string, raw []byte) (string, error) {
	if bytes.Contains(raw, []byte("\r\n")) {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	if len(raw) > 0 && raw[0] == '"' {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`, nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{value}); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// lineStarts returns the byte offset of the start of every line
func lineStarts(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// recordEnd trims the line terminator off the reader offset after a record
func recordEnd(data []byte, offset int) int {
	end := offset
	if end > 0 && data[end-1] == '\n' {
		end--
		if end > 0 && data[end-1] == '\r' {
			end--
		}
	}
	return end
}

func toParseError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr}
	}
	return err
}

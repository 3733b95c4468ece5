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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMissingHeader is returned when the input holds no header record
	ErrMissingHeader = errors.Base("missing header row")
	// ErrRowTooLong is returned when a record has more fields than the header
	ErrRowTooLong = errors.Base("record has more fields than header")
)

// ❌ ParseError reports malformed CSV input
type ParseError struct {
	Line int   // 1-indexed line where the problem was found, 0 if unknown
	Err  error // Underlying cause (a *csv.ParseError or one of the sentinels above)
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

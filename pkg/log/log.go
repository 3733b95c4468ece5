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
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 FileOperation describes one rewritten file for logging
type FileOperation struct {
	Path        string // File path
	Column      string // Column that was lowercased
	Status      string // Result status (modified/unchanged)
	Rows        int    // Data rows written
	Lowered     int    // Cells that changed
	ColumnFound bool   // Whether the column was in the header
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats the confirmation line for a rewritten file
func (l *Logger) formatFileOperation(op FileOperation) string {
	column := color.New(color.Bold).Sprintf("%q", op.Column)
	path := color.New(color.FgCyan).Sprint(op.Path)

	if !op.ColumnFound {
		note := color.New(color.FgYellow).Sprint("rows unchanged")
		return fmt.Sprintf("⚠️  column %s not found in %s (%s)", column, path, note)
	}

	detail := color.New(color.Faint).Sprintf("%d of %d rows changed, %s", op.Lowered, op.Rows, op.Status)
	return fmt.Sprintf("✅ lowercased column %s in %s (%s)", column, path, detail)
}

// 📝 LogFileOperation prints the confirmation line for a rewritten file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("column", op.Column).
		Str("status", op.Status).
		Int("rows", op.Rows).
		Int("lowered", op.Lowered).
		Bool("column_found", op.ColumnFound).
		Msg("file operation")
}

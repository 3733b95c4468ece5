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
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/csvlower/pkg/log"
	"github.com/walteh/csvlower/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// The file and column are fixed for this cleanup run.
const (
	dataPath     = "_tmp/data/supervisors 2025-26.csv"
	targetColumn = "email"
)

// options holds the inputs of a single run
type options struct {
	path   string
	column string
	debug  bool
}

func (o *options) validate() error {
	if o.path == "" {
		return errors.Errorf("path is required")
	}
	if o.column == "" {
		return errors.Errorf("column is required")
	}
	return nil
}

func newRootCommand() *cobra.Command {
	return newCommand(&options{path: dataPath, column: targetColumn}, os.Stdout)
}

// newCommand builds the root command writing its confirmation line to console
func newCommand(opts *options, console io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csvlower",
		Short: "Lowercase the email column of the supervisors CSV in place",
		Long: `csvlower rewrites ` + dataPath + ` with every value of the
"` + targetColumn + `" column lowercased. Other columns, row order and header order
are kept. The file is overwritten without a backup.`,
		Args:          cobra.NoArgs,
		Version:       readBuildInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), opts.debug)
			return run(ctx, opts, console)
		},
	}

	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

func run(ctx context.Context, opts *options, console io.Writer) error {
	if err := opts.validate(); err != nil {
		return errors.Errorf("validating options: %w", err)
	}

	level := zerolog.WarnLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	ctx = log.NewContext(ctx, log.New(console, level))

	result, err := transform.Transform(ctx, opts.path, opts.column)
	if err != nil {
		return errors.Errorf("lowercasing column %q: %w", opts.column, err)
	}

	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
		Path:        result.Path,
		Column:      result.Column,
		Status:      result.Status().String(),
		Rows:        result.Rows,
		Lowered:     result.Lowered,
		ColumnFound: result.ColumnFound,
	})

	return nil
}

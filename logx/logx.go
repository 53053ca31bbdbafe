// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides a colored [slog.Handler] for terminal output,
// and a user-controlled log level that defaults by build tag:
// debug for -tags debug, warn for -tags release, and info otherwise.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level of the handler installed by
// [SetDefault]. It can be changed at any time.
var UserLevel = func() *slog.LevelVar {
	lv := &slog.LevelVar{}
	lv.Set(defaultUserLevel)
	return lv
}()

// UseColor is whether to color log output. It is set by [SetDefault]
// from the terminal capabilities of the output.
var UseColor = true

// SetDefault installs a [Handler] writing to w (os.Stderr if nil) at
// [UserLevel] as the default slog logger.
func SetDefault(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	out := termenv.NewOutput(w)
	UseColor = out.Profile != termenv.Ascii && !termenv.EnvNoColor()
	lg := slog.New(NewHandler(w, UserLevel))
	slog.SetDefault(lg)
	return lg
}

// SetLevelFromVerbosity sets [UserLevel] from command line style flags.
func SetLevelFromVerbosity(verbose, quiet bool) {
	switch {
	case verbose:
		UserLevel.Set(slog.LevelDebug)
	case quiet:
		UserLevel.Set(slog.LevelError)
	default:
		UserLevel.Set(defaultUserLevel)
	}
}

// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"

	"github.com/goplus/hxbuild/internal/toolchain"
)

// IOError reports a failed file or directory operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DownloadError reports a failed fetch of a remote artifact.
type DownloadError = toolchain.DownloadError

// SpecError reports a runtime selection that names no downloadable
// distribution. It is a configuration error, not an I/O one.
type SpecError = toolchain.SpecError

// ProcessExecutionError reports an external command that could not be
// started or exited with a non-zero code. ExitCode is -1 when the command
// never ran.
type ProcessExecutionError struct {
	Cmd      string
	Dir      string
	ExitCode int
	Err      error
}

func (e *ProcessExecutionError) Error() string {
	return fmt.Sprintf("exec %q: %v", e.Cmd, e.Err)
}

func (e *ProcessExecutionError) Unwrap() error { return e.Err }

// Failure is returned by Pipeline.Run. It names the stage that failed.
type Failure struct {
	Stage Stage
	Err   error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("%s: %v: build failed", e.Stage, e.Err)
}

func (e *Failure) Unwrap() error { return e.Err }

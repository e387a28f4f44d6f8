// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner executes external tools and streams their output to a log.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/log"
	"golang.org/x/sys/execabs"
)

// Runner executes a command line in a working directory.
//
// A command that starts and exits non-zero returns its exit code together
// with an *ExitError. A command that cannot be started returns -1 and a
// *LaunchError.
type Runner interface {
	Run(ctx context.Context, cmdline, dir string) (int, error)
}

// LaunchError reports a command that could not be started.
type LaunchError struct {
	Cmd string
	Dir string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot run %q in %s: %v", e.Cmd, e.Dir, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError reports a command that exited with a non-zero code.
type ExitError struct {
	Cmd  string
	Dir  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%q in %s exited with code %d", e.Cmd, e.Dir, e.Code)
}

// Exec runs commands on the host.
type Exec struct {
	// Sink receives every output line. It defaults to logging each line at
	// info level as "exec: <line>".
	Sink func(line string)
	// Env overrides environment variables of the child process.
	Env map[string]string
}

var _ Runner = (*Exec)(nil)

// New creates an Exec that logs process output.
func New() *Exec {
	return &Exec{}
}

func (r *Exec) sink() func(string) {
	if r.Sink != nil {
		return r.Sink
	}
	return func(line string) {
		log.Info("exec: " + line)
	}
}

// Run splits cmdline with shell word rules and runs it in dir.
func (r *Exec) Run(ctx context.Context, cmdline, dir string) (int, error) {
	log.Infof("Executing: '%s' (%s)", cmdline, dir)
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return -1, &LaunchError{Cmd: cmdline, Dir: dir, Err: err}
	}
	if len(args) == 0 {
		return -1, &LaunchError{Cmd: cmdline, Dir: dir, Err: errors.New("empty command line")}
	}

	out := newLineWriter(r.sink())
	defer out.Flush()

	cmd := execabs.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if len(r.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), r.Env)
	}
	if err := cmd.Start(); err != nil {
		return -1, &LaunchError{Cmd: cmdline, Dir: dir, Err: err}
	}
	err = cmd.Wait()
	code := cmd.ProcessState.ExitCode()
	log.Debugf("exec: result = %d", code)
	if err != nil {
		var exitErr *execabs.ExitError
		if errors.As(err, &exitErr) {
			return code, &ExitError{Cmd: cmdline, Dir: dir, Code: code}
		}
		return code, &LaunchError{Cmd: cmdline, Dir: dir, Err: err}
	}
	return code, nil
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

// Setenv overrides an environment variable for subsequent commands.
func (r *Exec) Setenv(key, val string) {
	if r.Env == nil {
		r.Env = map[string]string{}
	}
	r.Env[key] = val
}

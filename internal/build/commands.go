// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"context"
	"errors"

	"github.com/goplus/hxbuild/internal/runner"
)

// exec runs cmdline in dir. Both launch failures and non-zero exits are
// returned as *ProcessExecutionError.
func (p *Pipeline) exec(ctx context.Context, cmdline, dir string) error {
	code, err := p.runner.Run(ctx, cmdline, dir)
	if err == nil && code != 0 {
		err = &runner.ExitError{Cmd: cmdline, Dir: dir, Code: code}
	}
	if err != nil {
		var launchErr *runner.LaunchError
		if errors.As(err, &launchErr) {
			code = -1
		}
		return &ProcessExecutionError{Cmd: cmdline, Dir: dir, ExitCode: code, Err: err}
	}
	return nil
}

// npm runs npm inside the sources directory.
func (p *Pipeline) npm(ctx context.Context, args string) error {
	return p.exec(ctx, p.node.Npm(args), p.sourcesDir())
}

func (p *Pipeline) npx(ctx context.Context, args string) error {
	return p.exec(ctx, p.node.Npx(args), p.sourcesDir())
}

func (p *Pipeline) lix(ctx context.Context, args string) error {
	return p.npx(ctx, "lix "+args)
}

func (p *Pipeline) haxe(ctx context.Context, args string) error {
	return p.npx(ctx, "haxe "+args)
}

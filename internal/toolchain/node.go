// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toolchain acquires a Node.js runtime into a version-addressed
// cache directory and builds command lines for the tools it ships.
package toolchain

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/hxbuild/internal/fsx"
	"github.com/goplus/hxbuild/internal/hostenv"
	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"
)

// DefaultMirror is the Node.js distribution site.
const DefaultMirror = "https://nodejs.org/dist"

// Spec selects a Node.js distribution.
type Spec struct {
	Version string // e.g. "10.16.0"
	Arch    string // e.g. "x64"
	Mirror  string // defaults to DefaultMirror
	Host    hostenv.Host
}

// Validate checks that the version is a full semantic version.
func (s Spec) Validate() error {
	v := "v" + strings.TrimPrefix(s.Version, "v")
	if !semver.IsValid(v) || semver.Canonical(v) != v {
		return fmt.Errorf("invalid node version %q: want MAJOR.MINOR.PATCH", s.Version)
	}
	if s.Arch == "" {
		return fmt.Errorf("node architecture is empty")
	}
	return nil
}

// SpecError reports a Spec that names no downloadable distribution,
// either invalid or for an unsupported host.
type SpecError struct {
	Spec Spec
	Err  error
}

func (e *SpecError) Error() string {
	return "node " + e.Spec.Version + ": " + e.Err.Error()
}

func (e *SpecError) Unwrap() error { return e.Err }

func (s Spec) version() string {
	return strings.TrimPrefix(s.Version, "v")
}

// Name returns the distribution name, e.g. "node-v10.16.0-linux-x64".
func (s Spec) Name() (string, error) {
	nodeOS, err := s.Host.NodeOS()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("node-v%s-%s-%s", s.version(), nodeOS, s.Arch), nil
}

// ArchiveName returns the file name of the distribution archive.
func (s Spec) ArchiveName() (string, error) {
	name, err := s.Name()
	if err != nil {
		return "", err
	}
	ext, err := s.Host.ArchiveExt()
	if err != nil {
		return "", err
	}
	return name + "." + ext, nil
}

// URL returns the download URL of the distribution archive.
func (s Spec) URL() (string, error) {
	archive, err := s.ArchiveName()
	if err != nil {
		return "", err
	}
	mirror := s.Mirror
	if mirror == "" {
		mirror = DefaultMirror
	}
	return fmt.Sprintf("%s/v%s/%s", strings.TrimSuffix(mirror, "/"), s.version(), archive), nil
}

// Install is an unpacked Node.js runtime.
type Install struct {
	Dir  string // root of the unpacked distribution
	Host hostenv.Host
}

// BinDir returns the directory holding node, npm and npx.
func (in *Install) BinDir() string {
	return filepath.Join(in.Dir, in.Host.BinDir())
}

func (in *Install) exe(name string) string {
	if name != "node" {
		name += in.Host.ScriptSuffix()
	} else if in.Host.IsWindows() {
		name += ".exe"
	}
	return filepath.Join(in.BinDir(), name)
}

func (in *Install) command(tool, args string) string {
	cmd := shellquote.Join(in.exe(tool))
	if args == "" {
		return cmd
	}
	return cmd + " " + args
}

// Node returns the command line running node with args.
func (in *Install) Node(args string) string { return in.command("node", args) }

// Npm returns the command line running npm with args.
func (in *Install) Npm(args string) string { return in.command("npm", args) }

// Npx returns the command line running npx with args.
func (in *Install) Npx(args string) string { return in.command("npx", args) }

// PathEnv returns PATH with the runtime's bin dir in front, so npm scripts
// find node.
func (in *Install) PathEnv() string {
	if cur := os.Getenv("PATH"); cur != "" {
		return in.BinDir() + string(os.PathListSeparator) + cur
	}
	return in.BinDir()
}

// Acquirer fetches runtimes.
type Acquirer interface {
	Acquire(ctx context.Context, cacheDir string, spec Spec) (*Install, error)
}

// Fetcher downloads and unpacks runtimes over HTTP.
type Fetcher struct {
	Client *http.Client
}

var _ Acquirer = (*Fetcher)(nil)

// NewFetcher creates a Fetcher with the default HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: http.DefaultClient}
}

// Acquire makes sure the runtime described by spec is unpacked inside
// cacheDir. The archive is downloaded only if it is not in cacheDir yet, and
// unpacked only if its target directory is missing or empty.
func (f *Fetcher) Acquire(ctx context.Context, cacheDir string, spec Spec) (*Install, error) {
	if err := spec.Validate(); err != nil {
		return nil, &SpecError{Spec: spec, Err: err}
	}
	name, err := spec.Name()
	if err != nil {
		return nil, &SpecError{Spec: spec, Err: err}
	}
	archiveName, err := spec.ArchiveName()
	if err != nil {
		return nil, &SpecError{Spec: spec, Err: err}
	}
	url, err := spec.URL()
	if err != nil {
		return nil, &SpecError{Spec: spec, Err: err}
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}

	archive := filepath.Join(cacheDir, archiveName)
	if _, err := os.Stat(archive); err == nil {
		log.Infof("Archive found: %s (skipping download)", archive)
	} else {
		log.Infof("Downloading %s from %s", archive, url)
		if err := f.download(ctx, url, archive); err != nil {
			return nil, err
		}
	}

	dir := filepath.Join(cacheDir, name)
	if fsx.IsEmptyDir(dir) {
		log.Infof("Unpacking %s to %s", archive, cacheDir)
		if err := Extract(archive, cacheDir); err != nil {
			return nil, fmt.Errorf("unpack %s: %w", archive, err)
		}
	} else {
		log.Infof("Expanded archive found: %s (skipping unpack)", dir)
	}
	return &Install{Dir: dir, Host: spec.Host}, nil
}

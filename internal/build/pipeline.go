// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build drives a Haxe compilation: it acquires Node.js, bootstraps
// lix and the compiler, merges the parameter file with the caller's settings
// and copies the compiler output to its destination.
package build

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goplus/hxbuild/internal/config"
	"github.com/goplus/hxbuild/internal/fsx"
	"github.com/goplus/hxbuild/internal/hostenv"
	"github.com/goplus/hxbuild/internal/runner"
	"github.com/goplus/hxbuild/internal/toolchain"
	"github.com/goplus/hxbuild/pkgs/hxml"
	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/log"
)

// Stage is a step of the pipeline. Stages run in declaration order.
type Stage int

const (
	AcquireToolchain Stage = iota
	PrepareWorkspace
	ResolveParameters
	MergeCallerConfig
	ResolveLibraryDependencies
	Compile
	CopyArtifacts
)

var stageNames = [...]string{
	AcquireToolchain:           "acquire toolchain",
	PrepareWorkspace:           "prepare workspace",
	ResolveParameters:          "resolve parameters",
	MergeCallerConfig:          "merge caller config",
	ResolveLibraryDependencies: "resolve library dependencies",
	Compile:                    "compile",
	CopyArtifacts:              "copy artifacts",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown stage"
}

// Library the cpp target needs at runtime.
const cppRuntimeLib = "hxcpp"

// Layout of the intermediate directory.
const (
	sourcesDirName = "haxe-sources"
	outputDirName  = "haxe-output"
	nodeDirName    = "node"
)

// Result describes a successful run.
type Result struct {
	// CommandLine holds the compiler arguments as passed to haxe.
	CommandLine string
	// Libraries lists the haxelibs installed before compiling.
	Libraries []string
	// OutputDir is where the artifacts were copied.
	OutputDir string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunner sets the command runner.
func WithRunner(r runner.Runner) Option {
	return func(p *Pipeline) { p.runner = r }
}

// WithFS sets the file system.
func WithFS(fsys fsx.FS) Option {
	return func(p *Pipeline) { p.fs = fsys }
}

// WithAcquirer sets how the Node.js runtime is obtained.
func WithAcquirer(a toolchain.Acquirer) Option {
	return func(p *Pipeline) { p.acquirer = a }
}

// WithHost overrides the host platform.
func WithHost(h hostenv.Host) Option {
	return func(p *Pipeline) { p.host = h }
}

// Pipeline runs one build. It is not safe for concurrent use, and two
// pipelines must not share an intermediate directory at the same time.
type Pipeline struct {
	cfg      *config.Config
	runner   runner.Runner
	fs       fsx.FS
	acquirer toolchain.Acquirer
	host     hostenv.Host

	node      *toolchain.Install
	params    *hxml.Params
	mainClass string
	result    Result
}

// New creates a pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:  cfg,
		host: hostenv.Current(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runner == nil {
		p.runner = runner.New()
	}
	if p.fs == nil {
		p.fs = fsx.OS{}
	}
	if p.acquirer == nil {
		p.acquirer = toolchain.NewFetcher()
	}
	return p
}

// Run executes all stages in order. The first failing stage ends the run;
// its error is logged and returned as a *Failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.cfg
	log.Info("nodeVersion: " + cfg.Node.Version)
	log.Info("nodeArchitecture: " + cfg.Node.Arch)
	log.Info("haxeVersion: " + cfg.Haxe.Version)
	log.Info("intermediateDir: " + cfg.IntermediateDir)
	log.Info("sourceDirectory: " + cfg.SourceDir)
	log.Info("outputDirectory: " + cfg.OutputDir)

	stages := []struct {
		stage Stage
		run   func(context.Context) error
	}{
		{AcquireToolchain, p.acquireToolchain},
		{PrepareWorkspace, p.prepareWorkspace},
		{ResolveParameters, p.resolveParameters},
		{MergeCallerConfig, p.mergeCallerConfig},
		{ResolveLibraryDependencies, p.resolveLibraries},
		{Compile, p.compile},
		{CopyArtifacts, p.copyArtifacts},
	}
	for _, s := range stages {
		log.Debugf("stage: %s", s.stage)
		if err := s.run(ctx); err != nil {
			f := &Failure{Stage: s.stage, Err: err}
			log.Error(f.Error())
			return nil, f
		}
	}
	return &p.result, nil
}

// Params returns the parameter set after merging. It is nil before the
// parameters are resolved.
func (p *Pipeline) Params() *hxml.Params {
	return p.params
}

func (p *Pipeline) sourcesDir() string {
	return filepath.Join(p.cfg.IntermediateDir, sourcesDirName)
}

func (p *Pipeline) haxeOutputDir() string {
	return filepath.Join(p.cfg.IntermediateDir, outputDirName)
}

func (p *Pipeline) nodeCacheDir() string {
	return filepath.Join(p.cfg.IntermediateDir, nodeDirName)
}

func (p *Pipeline) ensureDir(dir string) (string, error) {
	got, err := p.fs.EnsureDir(dir)
	if err != nil {
		return "", &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return got, nil
}

func (p *Pipeline) acquireToolchain(ctx context.Context) error {
	spec := toolchain.Spec{
		Version: p.cfg.Node.Version,
		Arch:    p.cfg.Node.Arch,
		Mirror:  p.cfg.Node.Mirror,
		Host:    p.host,
	}
	node, err := p.acquirer.Acquire(ctx, p.nodeCacheDir(), spec)
	if err != nil {
		var (
			dlErr   *DownloadError
			specErr *SpecError
		)
		if errors.As(err, &dlErr) || errors.As(err, &specErr) {
			return err
		}
		return &IOError{Op: "acquire", Path: p.nodeCacheDir(), Err: err}
	}
	p.node = node
	log.Info("Using node from: " + node.Dir)
	if s, ok := p.runner.(interface{ Setenv(key, val string) }); ok {
		s.Setenv("PATH", node.PathEnv())
	}

	for _, cmd := range []string{node.Node("--version"), node.Npm("--version"), node.Npx("--version")} {
		if err := p.exec(ctx, cmd, node.Dir); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) prepareWorkspace(ctx context.Context) error {
	src, err := p.ensureDir(p.sourcesDir())
	if err != nil {
		return err
	}
	if p.fs.Exists(p.cfg.SourceDir) {
		if err := p.fs.CopyTree(p.cfg.SourceDir, src); err != nil {
			return &IOError{Op: "copy", Path: p.cfg.SourceDir, Err: err}
		}
	}

	pkgJSON := filepath.Join(src, "package.json")
	if !p.fs.Exists(pkgJSON) {
		if err := p.fs.WriteText(pkgJSON, "{}"); err != nil {
			return &IOError{Op: "write", Path: pkgJSON, Err: err}
		}
	}
	if err := p.npm(ctx, "init -y"); err != nil {
		return err
	}
	if err := p.npm(ctx, "install lix --save --scripts-prepend-node-path"); err != nil {
		return err
	}

	ver := p.cfg.Haxe.Version
	for _, cmd := range []string{"scope create", "install haxe " + ver, "use haxe " + ver} {
		if err := p.lix(ctx, cmd); err != nil {
			return err
		}
	}
	return p.haxe(ctx, "-version")
}

func (p *Pipeline) resolveParameters(context.Context) error {
	p.mainClass = p.cfg.Main
	if p.cfg.Hxml == "" {
		p.params = &hxml.Params{}
		if p.mainClass == "" {
			p.mainClass = config.DefaultMainClass
		}
		return nil
	}
	path := filepath.Join(p.sourcesDir(), p.cfg.Hxml)
	text, err := p.fs.ReadText(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("parameter file %s not found, starting from an empty set", path)
			p.params = &hxml.Params{}
			return nil
		}
		return &IOError{Op: "read", Path: path, Err: err}
	}
	p.params = hxml.Parse(text)
	return nil
}

func (p *Pipeline) mergeCallerConfig(context.Context) error {
	out, err := p.ensureDir(p.haxeOutputDir())
	if err != nil {
		return err
	}
	params := p.params
	params.AddClasspaths(p.cfg.Classpaths)
	params.AddLibraries(p.cfg.Libs)
	if p.mainClass != "" {
		params.SetMainClass(p.mainClass)
	}
	params.FixTarget(p.cfg.Target, out)
	if p.cfg.Target == "cpp" {
		params.AddLibrary(cppRuntimeLib)
	}
	if name, ok := params.TargetName(); ok {
		target, _ := params.Target()
		log.Infof("target: %s -> %s", name, target)
	} else {
		log.Warnf("no output target for %q, compiler output stays where the parameters put it", p.cfg.Target)
	}
	return nil
}

func (p *Pipeline) resolveLibraries(ctx context.Context) error {
	libs := p.params.Libraries()
	for _, lib := range libs {
		if err := p.lix(ctx, "install "+shellquote.Join("haxelib:"+lib)); err != nil {
			return err
		}
	}
	p.result.Libraries = libs
	return nil
}

func (p *Pipeline) compile(ctx context.Context) error {
	cmdline := p.compilerCommandLine()
	p.result.CommandLine = cmdline
	return p.haxe(ctx, cmdline)
}

// compilerCommandLine quotes directive values and defines so paths survive
// the runner's word splitting. Raw compiler args are passed through as
// written and may hold several words.
func (p *Pipeline) compilerCommandLine() string {
	parts := []string{shellquote.Join(p.params.Args()...)}
	parts = append(parts, p.cfg.CompilerArgs...)
	for _, def := range p.cfg.Defines {
		parts = append(parts, shellquote.Join("-"+hxml.Define, def))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (p *Pipeline) copyArtifacts(context.Context) error {
	dst, err := p.ensureDir(p.cfg.OutputDir)
	if err != nil {
		return err
	}
	if err := p.fs.CopyTree(p.haxeOutputDir(), dst); err != nil {
		return &IOError{Op: "copy", Path: p.haxeOutputDir(), Err: err}
	}
	p.result.OutputDir = dst
	return nil
}

// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hxml

import (
	"path/filepath"
	"slices"
)

// targets lists the compiler backends, in the order the compiler documents them.
var targets = []string{"js", "php", "cpp", "java", "cs", "swf", "python", "lua", "neko", "hl"}

// extensions maps file-producing targets to the extension of their output.
// Targets missing here write into a directory.
var extensions = map[string]string{
	"js":     "js",
	"swf":    "swf",
	"python": "py",
	"lua":    "lua",
	"neko":   "n",
	"hl":     "hl",
}

// Targets returns the known target identifiers.
func Targets() []string {
	return slices.Clone(targets)
}

// IsTarget reports whether name is a known target identifier.
func IsTarget(name string) bool {
	return slices.Contains(targets, name)
}

// TargetExtension returns the output file extension of target, or "" when
// the target produces a directory.
func TargetExtension(target string) string {
	return extensions[target]
}

func (p *Params) target() (Directive, bool) {
	for _, d := range p.Directives {
		if IsTarget(d.Name) {
			return d, true
		}
	}
	return Directive{}, false
}

// Target returns the output location of the first target directive.
func (p *Params) Target() (string, bool) {
	d, ok := p.target()
	return d.Value, ok
}

// TargetName returns the identifier of the first target directive.
func (p *Params) TargetName() (string, bool) {
	d, ok := p.target()
	return d.Name, ok
}

// FixTarget makes the compiler write its output for target into outputDir.
//
// Without a target directive a new one is appended, provided the main class
// is known: outputDir/<Main>.<ext> for file targets, outputDir itself for
// directory targets.
//
// With existing directives named target, file targets keep their base name
// and move to outputDir. Directory targets are left as they are.
func (p *Params) FixTarget(target, outputDir string) {
	if target == "" {
		return
	}
	if _, ok := p.target(); !ok {
		mainClass, ok := p.MainClassName()
		if !ok {
			return
		}
		value := outputDir
		if ext := TargetExtension(target); ext != "" {
			value = filepath.Join(outputDir, mainClass+"."+ext)
		}
		p.Add(target, value)
		return
	}
	if TargetExtension(target) == "" {
		return
	}
	for i := range p.Directives {
		d := &p.Directives[i]
		if d.Name == target {
			d.Value = filepath.Join(outputDir, filepath.Base(d.Value))
			d.HasValue = true
		}
	}
}

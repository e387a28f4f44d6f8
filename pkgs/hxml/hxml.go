// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hxml models Haxe compiler parameter files (.hxml).
//
// A parameter file is a sequence of directives, one per line:
//
//	-cp src
//	-lib utest
//	# comment
//	-main app.Main
//	-js out/app.js
//
// Params keeps directives in file order. Mutations either change a value in
// place or append at the end; they never reorder.
package hxml

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Well-known directive names.
const (
	Classpath = "cp"
	Library   = "lib"
	Main      = "main"
	Define    = "D"
)

// Directive is one compiler parameter. HasValue is false for flag-only
// directives such as -debug.
type Directive struct {
	Name     string
	Value    string
	HasValue bool
}

// Params is an ordered set of directives.
type Params struct {
	Directives []Directive
}

// Parse reads directives from the text of a parameter file. Blank lines and
// comments are skipped; lines without a name are dropped.
func Parse(text string) *Params {
	p := &Params{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			name, value = line[:i], line[i+1:]
		}
		name = strings.TrimSpace(strings.TrimPrefix(name, "-"))
		if name == "" {
			continue
		}
		d := Directive{Name: name, Value: strings.TrimSpace(value)}
		d.HasValue = d.Value != ""
		p.Directives = append(p.Directives, d)
	}
	return p
}

// ParseFile parses the parameter file at path. A missing file yields an
// empty Params.
func ParseFile(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Params{}, nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}

// Len returns the number of directives.
func (p *Params) Len() int {
	return len(p.Directives)
}

// Add appends a directive with a value.
func (p *Params) Add(name, value string) {
	p.Directives = append(p.Directives, Directive{Name: name, Value: value, HasValue: true})
}

// Values returns the values of all directives called name, in order.
func (p *Params) Values(name string) []string {
	var ret []string
	for _, d := range p.Directives {
		if d.Name == name {
			ret = append(ret, d.Value)
		}
	}
	return ret
}

func (p *Params) has(name, value string) bool {
	for _, d := range p.Directives {
		if d.Name == name && d.Value == value {
			return true
		}
	}
	return false
}

func (p *Params) addUnique(name string, values []string) {
	for _, v := range values {
		if !p.has(name, v) {
			p.Add(name, v)
		}
	}
}

// HasClasspath reports whether path is already a -cp directive.
func (p *Params) HasClasspath(path string) bool {
	return p.has(Classpath, path)
}

// AddClasspaths appends a -cp directive for every path not yet present.
func (p *Params) AddClasspaths(paths []string) {
	p.addUnique(Classpath, paths)
}

// HasLibrary reports whether lib is already a -lib directive.
func (p *Params) HasLibrary(lib string) bool {
	return p.has(Library, lib)
}

// AddLibrary appends a -lib directive unless lib is present.
func (p *Params) AddLibrary(lib string) {
	p.addUnique(Library, []string{lib})
}

// AddLibraries appends a -lib directive for every library not yet present.
func (p *Params) AddLibraries(libs []string) {
	p.addUnique(Library, libs)
}

// Libraries returns the values of all -lib directives.
func (p *Params) Libraries() []string {
	return p.Values(Library)
}

// MainClassName returns the unqualified name of the -main class:
// "com.foo.Bar" yields "Bar". A -main line without a value counts as absent.
func (p *Params) MainClassName() (string, bool) {
	for _, d := range p.Directives {
		if d.Name == Main && d.HasValue {
			return d.Value[strings.LastIndexByte(d.Value, '.')+1:], true
		}
	}
	return "", false
}

// SetMainClass stores value as the -main directive. The value is kept as
// given, qualified or not.
func (p *Params) SetMainClass(value string) {
	for i := range p.Directives {
		if p.Directives[i].Name == Main {
			p.Directives[i].Value = value
			p.Directives[i].HasValue = true
			return
		}
	}
	p.Add(Main, value)
}

// String serializes the directives into a compiler command line.
func (p *Params) String() string {
	var sb strings.Builder
	for _, d := range p.Directives {
		sb.WriteByte('-')
		sb.WriteString(d.Name)
		sb.WriteByte(' ')
		if d.HasValue {
			sb.WriteString(d.Value)
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

// Args returns the directives as an argument vector, one element per name
// and per value. Unlike String, values containing blanks stay whole.
func (p *Params) Args() []string {
	args := make([]string, 0, 2*len(p.Directives))
	for _, d := range p.Directives {
		args = append(args, "-"+d.Name)
		if d.HasValue {
			args = append(args, d.Value)
		}
	}
	return args
}

// CommandLine returns the serialized directives followed by the raw compiler
// args and one -D flag per define.
func (p *Params) CommandLine(args, defines []string) string {
	var sb strings.Builder
	sb.WriteString(p.String())
	for _, arg := range args {
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}
	for _, def := range defines {
		sb.WriteString(" -" + Define + " ")
		sb.WriteString(def)
	}
	return strings.TrimSpace(sb.String())
}

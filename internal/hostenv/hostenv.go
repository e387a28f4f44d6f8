// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostenv describes the host platform in the terms Node.js
// distributions use.
package hostenv

import (
	"fmt"
	"runtime"
)

// Host identifies an operating system. The zero value is the running host.
type Host struct {
	GOOS string
}

// Current returns the running host.
func Current() Host {
	return Host{GOOS: runtime.GOOS}
}

func (h Host) goos() string {
	if h.GOOS == "" {
		return runtime.GOOS
	}
	return h.GOOS
}

// IsWindows reports whether the host is Windows.
func (h Host) IsWindows() bool {
	return h.goos() == "windows"
}

// NodeOS returns the platform name used in Node.js archive names.
func (h Host) NodeOS() (string, error) {
	switch h.goos() {
	case "windows":
		return "win", nil
	case "linux":
		return "linux", nil
	case "darwin":
		return "darwin", nil
	}
	return "", fmt.Errorf("unsupported host os: %s", h.goos())
}

// ArchiveExt returns the extension of the Node.js archive for the host.
func (h Host) ArchiveExt() (string, error) {
	switch h.goos() {
	case "windows":
		return "zip", nil
	case "linux":
		return "tar.xz", nil
	case "darwin":
		return "tar.gz", nil
	}
	return "", fmt.Errorf("unsupported host os: %s", h.goos())
}

// ScriptSuffix returns the suffix of npm/npx launcher scripts.
func (h Host) ScriptSuffix() string {
	if h.IsWindows() {
		return ".cmd"
	}
	return ""
}

// BinDir returns the directory of executables relative to a Node.js
// installation root.
func (h Host) BinDir() string {
	if h.IsWindows() {
		return ""
	}
	return "bin"
}

// NodeArch maps a Go architecture name to the Node.js one.
func NodeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	case "arm":
		return "armv7l"
	}
	return goarch
}

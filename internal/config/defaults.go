// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultNodeVersion     = "10.16.0"
	defaultNodeArch        = "x64"
	defaultNodeMirror      = "https://nodejs.org/dist"
	defaultHaxeVersion     = "stable"
	defaultTarget          = "js"
	defaultIntermediateDir = "build"
	defaultOutputDir       = "haxe-output"
)

var defaultSourceDir = filepath.Join("src", "main", "haxe")

// DefaultMainClass is compiled when neither a parameter file nor a main
// class is configured.
const DefaultMainClass = "Main"

func setDefaults(v *viper.Viper) {
	v.SetDefault("node.version", defaultNodeVersion)
	v.SetDefault("node.arch", defaultNodeArch)
	v.SetDefault("node.mirror", defaultNodeMirror)
	v.SetDefault("haxe.version", defaultHaxeVersion)
	v.SetDefault("target", defaultTarget)
	v.SetDefault("intermediate_dir", defaultIntermediateDir)
	v.SetDefault("source_dir", defaultSourceDir)
	v.SetDefault("output_dir", defaultOutputDir)
	// Keys without a default still need registering so environment
	// overrides reach Unmarshal.
	for _, key := range []string{"hxml", "main"} {
		v.SetDefault(key, "")
	}
	for _, key := range []string{"classpaths", "libs", "compiler_args", "defines"} {
		v.SetDefault(key, []string{})
	}
	v.SetDefault("verbose", false)
}

// Default returns the configuration used without file, environment or flags.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			Version: defaultNodeVersion,
			Arch:    defaultNodeArch,
			Mirror:  defaultNodeMirror,
		},
		Haxe:            HaxeConfig{Version: defaultHaxeVersion},
		Target:          defaultTarget,
		IntermediateDir: defaultIntermediateDir,
		SourceDir:       defaultSourceDir,
		OutputDir:       defaultOutputDir,
	}
}

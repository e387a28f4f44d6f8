// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads build settings from defaults, an optional YAML file,
// HXBUILD_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
// when no file is given explicitly.
const FileName = "hxbuild"

// EnvPrefix prefixes environment overrides, e.g. HXBUILD_NODE_VERSION.
const EnvPrefix = "HXBUILD"

type NodeConfig struct {
	Version string `mapstructure:"version" yaml:"version"`
	Arch    string `mapstructure:"arch" yaml:"arch"`
	Mirror  string `mapstructure:"mirror" yaml:"mirror"`
}

type HaxeConfig struct {
	Version string `mapstructure:"version" yaml:"version"`
}

// Config is the complete set of build settings.
type Config struct {
	Node NodeConfig `mapstructure:"node" yaml:"node"`
	Haxe HaxeConfig `mapstructure:"haxe" yaml:"haxe"`

	// Hxml is the parameter file, relative to the source directory.
	Hxml string `mapstructure:"hxml" yaml:"hxml,omitempty"`
	// Target is the compiler backend, e.g. "js" or "cpp".
	Target string `mapstructure:"target" yaml:"target"`
	// Main overrides the main class.
	Main string `mapstructure:"main" yaml:"main,omitempty"`

	Classpaths   []string `mapstructure:"classpaths" yaml:"classpaths,omitempty"`
	Libs         []string `mapstructure:"libs" yaml:"libs,omitempty"`
	CompilerArgs []string `mapstructure:"compiler_args" yaml:"compiler_args,omitempty"`
	Defines      []string `mapstructure:"defines" yaml:"defines,omitempty"`

	IntermediateDir string `mapstructure:"intermediate_dir" yaml:"intermediate_dir"`
	SourceDir       string `mapstructure:"source_dir" yaml:"source_dir"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`

	Verbose bool `mapstructure:"verbose" yaml:"-"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"node-version":     "node.version",
	"node-arch":        "node.arch",
	"node-mirror":      "node.mirror",
	"haxe-version":     "haxe.version",
	"hxml":             "hxml",
	"target":           "target",
	"main":             "main",
	"cp":               "classpaths",
	"lib":              "libs",
	"compiler-arg":     "compiler_args",
	"define":           "defines",
	"intermediate-dir": "intermediate_dir",
	"source-dir":       "source_dir",
	"output-dir":       "output_dir",
	"verbose":          "verbose",
}

// RegisterFlags adds the build flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("node-version", defaultNodeVersion, "Node.js runtime version")
	fs.String("node-arch", defaultNodeArch, "Node.js runtime architecture")
	fs.String("node-mirror", defaultNodeMirror, "Node.js distribution site")
	fs.String("haxe-version", defaultHaxeVersion, "Haxe compiler version or channel")
	fs.String("hxml", "", "parameter file, relative to the source directory")
	fs.StringP("target", "t", defaultTarget, "compiler target")
	fs.StringP("main", "m", "", "main class")
	fs.StringSlice("cp", nil, "extra classpath (repeatable)")
	fs.StringSliceP("lib", "l", nil, "extra haxelib (repeatable)")
	fs.StringArray("compiler-arg", nil, "raw compiler argument (repeatable)")
	fs.StringArrayP("define", "D", nil, "compiler define (repeatable)")
	fs.String("intermediate-dir", defaultIntermediateDir, "working directory for downloads and compilation")
	fs.String("source-dir", defaultSourceDir, "Haxe source directory")
	fs.StringP("output-dir", "o", defaultOutputDir, "final output directory")
	fs.BoolP("verbose", "v", false, "enable debug logging")
}

// Load reads the configuration. file may be empty, in which case
// hxbuild.yaml in the working directory is used when present. fs may be nil.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", file, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file failed: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePaths makes directories absolute. The compiler runs inside the
// intermediate directory, so relative output paths would resolve against it.
func (c *Config) resolvePaths() error {
	for _, p := range []*string{&c.IntermediateDir, &c.SourceDir, &c.OutputDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return err
		}
		*p = abs
	}
	return nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

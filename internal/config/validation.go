// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goplus/hxbuild/pkgs/hxml"
	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"
)

// haxeChannels are the version aliases lix resolves itself.
var haxeChannels = []string{"stable", "latest", "nightly", "edge"}

func validate(c *Config) error {
	if err := c.Node.validate(); err != nil {
		return err
	}
	if err := c.Haxe.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target must not be empty")
	}
	if !hxml.IsTarget(c.Target) {
		// Unknown targets are passed through; the parameter file decides.
		log.Warnf("unknown target %q, known targets: %s", c.Target, strings.Join(hxml.Targets(), ", "))
	}
	for _, d := range []struct{ key, val string }{
		{"intermediate_dir", c.IntermediateDir},
		{"source_dir", c.SourceDir},
		{"output_dir", c.OutputDir},
	} {
		if strings.TrimSpace(d.val) == "" {
			return fmt.Errorf("%s must not be empty", d.key)
		}
	}
	return nil
}

func (n *NodeConfig) validate() error {
	v := "v" + strings.TrimPrefix(n.Version, "v")
	if !semver.IsValid(v) || semver.Canonical(v) != v {
		return fmt.Errorf("node.version %q is not a full semantic version", n.Version)
	}
	if strings.TrimSpace(n.Arch) == "" {
		return fmt.Errorf("node.arch must not be empty")
	}
	if !strings.HasPrefix(n.Mirror, "http://") && !strings.HasPrefix(n.Mirror, "https://") {
		return fmt.Errorf("node.mirror %q must be an http(s) URL", n.Mirror)
	}
	return nil
}

func (h *HaxeConfig) validate() error {
	if slices.Contains(haxeChannels, h.Version) {
		return nil
	}
	if !semver.IsValid("v" + h.Version) {
		return fmt.Errorf("haxe.version %q is neither a channel (%s) nor a version",
			h.Version, strings.Join(haxeChannels, ", "))
	}
	return nil
}

// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the optional uf2tool configuration file. It carries per-project
// conversion defaults; a flag set on the command line always wins. Pad is a
// pointer so an explicit zero pad byte can be distinguished from "not set".
type Config struct {
	BaseAddr string `yaml:"base_addr"`
	Family   string `yaml:"family"`
	Pad      *uint  `yaml:"pad"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uf2tool", "config.yaml")
}

// loadConfig reads the config file. A missing file is not an error and
// yields a zero Config, unless the path was given explicitly.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyConvertConfig applies config file defaults to the convert command
// values when the corresponding flag was not set on the command line.
func applyConvertConfig(c *cli.Command, cfg Config, base, family *string, pad *uint) {
	if cfg.BaseAddr != "" && !c.IsSet("base-addr") {
		*base = cfg.BaseAddr
	}
	if cfg.Family != "" && !c.IsSet("family") {
		*family = cfg.Family
	}
	if cfg.Pad != nil && !c.IsSet("pad") {
		*pad = *cfg.Pad
	}
}

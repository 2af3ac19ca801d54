// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for azpipe's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/azpipe.yaml or $HOME/.config/azpipe.yaml
//   - Windows: %APPDATA%/azpipe.yaml
//
// Recognized keys:
//   - core.output: default --output format
//   - core.inventory: resource document read when no file is given
//   - core.no_color: never use the colored JSON/YAML formats
//   - core.color_style: chroma style used by jsonc/yamlc (default monokai)
//   - core.output_encoding: charset the output stream is written in
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions. AZPIPE_CFG_FILE overrides the location.
package config

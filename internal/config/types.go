// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package config holds the reporter configuration: which providers run, how
// their XML is shaped, which optional facts are suppressed and where the
// host filesystems live.
package config

import (
	"github.com/antimetal/kickstart/pkg/config/environment"
	"github.com/antimetal/kickstart/pkg/machine"
)

// Config is the reporter configuration. Zero fields in a loaded file keep
// the value from Default.
type Config struct {
	// Tag names the element wrapping each provider's output.
	Tag string `yaml:"tag" json:"tag"`
	// Indent is the indentation width handed to the providers.
	Indent int `yaml:"indent" json:"indent"`
	// Providers lists provider names in output order.
	Providers []string `yaml:"providers" json:"providers"`
	// Disable lists capabilities to suppress even when the platform has them.
	Disable []string `yaml:"disable" json:"disable"`
	// Document wraps the output in an XML declaration and a Root element.
	Document bool   `yaml:"document" json:"document"`
	Root     string `yaml:"root" json:"root"`
	// Output is a file path; empty means stdout.
	Output string `yaml:"output" json:"output"`

	HostPaths HostPaths `yaml:"host_paths" json:"host_paths"`
}

// HostPaths overrides the proc and sysfs roots. Empty fields fall back to
// HOST_PROC/HOST_SYS and then to /proc and /sys.
type HostPaths struct {
	Proc string `yaml:"proc" json:"proc"`
	Sys  string `yaml:"sys" json:"sys"`
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Tag:       "machine",
		Indent:    2,
		Providers: []string{machine.BasicProvider},
		Root:      "machines",
	}
}

// Paths resolves the host filesystem roots.
func (c Config) Paths() environment.HostPaths {
	return environment.HostPaths{
		Proc: c.HostPaths.Proc,
		Sys:  c.HostPaths.Sys,
	}.Merge(environment.GetHostPaths())
}

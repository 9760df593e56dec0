// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package config

import (
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

// Flags binds the command line onto a Config. Flags that were set
// explicitly take precedence over the config file.
type Flags struct {
	ConfigPath string

	values  Config
	flagSet *pflag.FlagSet
}

// AddFlags registers the configuration flags on flagSet.
func (f *Flags) AddFlags(flagSet *pflag.FlagSet) {
	def := Default()
	f.flagSet = flagSet

	flagSet.StringVarP(&f.ConfigPath, "config", "c", "",
		"Path to a YAML or JSON configuration file")
	flagSet.StringArrayVarP(&f.values.Providers, "provider", "p", def.Providers,
		"Machine provider to report, repeatable and written in order")
	flagSet.StringVar(&f.values.Tag, "tag", def.Tag,
		"Element name wrapping each provider's output")
	flagSet.IntVar(&f.values.Indent, "indent", def.Indent,
		"Indentation width passed to the providers")
	flagSet.StringSliceVar(&f.values.Disable, "disable", nil,
		"Capabilities to suppress, e.g. ram-avail,procs")
	flagSet.BoolVar(&f.values.Document, "document", false,
		"Emit an XML declaration and wrap providers in a root element")
	flagSet.StringVar(&f.values.Root, "root", def.Root,
		"Root element name used with --document")
	flagSet.StringVarP(&f.values.Output, "output", "o", "",
		"Write the report to this file instead of stdout")
	flagSet.StringVar(&f.values.HostPaths.Proc, "host-proc", "",
		"Root of the proc filesystem (default $HOST_PROC or /proc)")
	flagSet.StringVar(&f.values.HostPaths.Sys, "host-sys", "",
		"Root of the sysfs filesystem (default $HOST_SYS or /sys)")
}

// Resolve loads the config file, if any, applies the explicitly set flags
// over it and validates the result.
func (f *Flags) Resolve(logger logr.Logger) (Config, error) {
	cfg := Default()
	if f.ConfigPath != "" {
		var err error
		cfg, err = LoadFile(f.ConfigPath, logger)
		if err != nil {
			return cfg, err
		}
	}

	if f.flagSet != nil {
		f.flagSet.Visit(func(fl *pflag.Flag) {
			switch fl.Name {
			case "provider":
				cfg.Providers = f.values.Providers
			case "tag":
				cfg.Tag = f.values.Tag
			case "indent":
				cfg.Indent = f.values.Indent
			case "disable":
				cfg.Disable = f.values.Disable
			case "document":
				cfg.Document = f.values.Document
			case "root":
				cfg.Root = f.values.Root
			case "output":
				cfg.Output = f.values.Output
			case "host-proc":
				cfg.HostPaths.Proc = f.values.HostPaths.Proc
			case "host-sys":
				cfg.HostPaths.Sys = f.values.HostPaths.Sys
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
